package ledger

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/dusk-network/dusk-ecash/pkg/core/coin"
	"github.com/dusk-network/dusk-ecash/pkg/core/detector"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var drivers = []string{DriverHashmap, DriverBuntdb, DriverLeveldb, DriverStorm}

func record(guid string) Record {
	return Record{
		GUID:   guid,
		Amount: 20,
		State:  coin.StateSpent,
		Deposits: []Deposit{{
			Merchant: "shop",
			RIS:      coin.RIS{[]byte{1, 2, 3}, []byte{4, 5, 6}},
			Time:     time.Unix(1600000000, 0),
		}},
	}
}

func TestRecordEncoding(t *testing.T) {
	r := record("abc")
	r.State = coin.StateFlagged
	r.Deposits = append(r.Deposits, Deposit{Merchant: "market", RIS: coin.RIS{{7}, {8}}, Time: time.Unix(1600000100, 0)})
	r.Verdict = &detector.Verdict{GUID: "abc", Outcome: detector.PayerDoubleSpent, Identity: "alice", Slot: 0}

	buf := new(bytes.Buffer)
	require.NoError(t, MarshalRecord(buf, r))

	decoded, err := UnmarshalRecord(buf)
	require.NoError(t, err)
	assert.Equal(t, r, decoded)

	// a no-identity verdict keeps its negative slot
	r.Verdict = &detector.Verdict{GUID: "abc", Outcome: detector.NoIdentityRevealed, Slot: -1}
	buf.Reset()
	require.NoError(t, MarshalRecord(buf, r))
	decoded, err = UnmarshalRecord(buf)
	require.NoError(t, err)
	assert.Equal(t, -1, decoded.Verdict.Slot)
}

func TestUnmarshalTruncated(t *testing.T) {
	buf := new(bytes.Buffer)
	require.NoError(t, MarshalRecord(buf, record("abc")))

	b := buf.Bytes()
	_, err := UnmarshalRecord(bytes.NewBuffer(b[:len(b)-3]))
	assert.Error(t, err)
}

func TestStores(t *testing.T) {
	for _, driver := range drivers {
		t.Run(driver, func(t *testing.T) {
			l, err := New(driver, t.TempDir(), 1000)
			require.NoError(t, err)
			defer l.Close()

			_, err = l.Get("missing")
			assert.True(t, errors.Is(err, ErrNotFound))
			assert.False(t, l.Seen("missing"))

			for i := 0; i < 5; i++ {
				guid := fmt.Sprintf("guid%02d", i)
				require.NoError(t, l.Update(guid, func(r *Record, found bool) error {
					assert.False(t, found)
					*r = record(guid)
					return nil
				}))
			}

			assert.Equal(t, 5, l.Len())
			assert.True(t, l.Seen("guid03"))

			got, err := l.Get("guid03")
			require.NoError(t, err)
			assert.Equal(t, record("guid03"), got)

			var seen []string
			require.NoError(t, l.Range(func(r Record) error {
				seen = append(seen, r.GUID)
				return nil
			}))
			assert.ElementsMatch(t, []string{"guid00", "guid01", "guid02", "guid03", "guid04"}, seen)
		})
	}
}

func TestUpdateExisting(t *testing.T) {
	for _, driver := range drivers {
		t.Run(driver, func(t *testing.T) {
			l, err := New(driver, t.TempDir(), 1000)
			require.NoError(t, err)
			defer l.Close()

			require.NoError(t, l.Update("g", func(r *Record, found bool) error {
				*r = record("g")
				return nil
			}))

			require.NoError(t, l.Update("g", func(r *Record, found bool) error {
				assert.True(t, found)
				assert.Len(t, r.Deposits, 1)
				r.State = coin.StateFlagged
				return nil
			}))

			got, err := l.Get("g")
			require.NoError(t, err)
			assert.Equal(t, coin.StateFlagged, got.State)
			assert.Equal(t, 1, l.Len())
		})
	}
}

func TestUpdateErrorStoresNothing(t *testing.T) {
	l, err := New(DriverHashmap, "", 0)
	require.NoError(t, err)

	errStop := errors.New("stop")
	err = l.Update("g", func(r *Record, found bool) error {
		r.Amount = 5
		return errStop
	})
	assert.Equal(t, errStop, err)
	assert.Equal(t, 0, l.Len())
	assert.False(t, l.Seen("g"))
}

func TestRangeStops(t *testing.T) {
	s := new(HashMap)
	require.NoError(t, s.Create(""))
	require.NoError(t, s.Put(record("a")))
	require.NoError(t, s.Put(record("b")))

	errStop := errors.New("stop")
	calls := 0
	err := s.Range(func(r Record) error {
		calls++
		return errStop
	})
	assert.Equal(t, errStop, err)
	assert.Equal(t, 1, calls)
}

func TestReopen(t *testing.T) {
	for _, driver := range []string{DriverBuntdb, DriverLeveldb, DriverStorm} {
		t.Run(driver, func(t *testing.T) {
			dir := t.TempDir()

			l, err := New(driver, dir, 1000)
			require.NoError(t, err)
			require.NoError(t, l.Update("kept", func(r *Record, found bool) error {
				*r = record("kept")
				return nil
			}))
			require.NoError(t, l.Close())

			l, err = New(driver, dir, 1000)
			require.NoError(t, err)
			defer l.Close()

			// the filter is rebuilt from the store
			assert.True(t, l.Seen("kept"))
			got, err := l.Get("kept")
			require.NoError(t, err)
			assert.Equal(t, "shop", got.Deposits[0].Merchant)
		})
	}
}

func TestSaturatedFilter(t *testing.T) {
	s := new(HashMap)
	require.NoError(t, s.Create(""))

	l, err := NewWithStore(s, 1)
	require.NoError(t, err)

	for i := 0; i < 200; i++ {
		guid := fmt.Sprintf("g%d", i)
		require.NoError(t, l.Update(guid, func(r *Record, found bool) error {
			*r = record(guid)
			return nil
		}))
	}

	for i := 0; i < 200; i++ {
		_, err := l.Get(fmt.Sprintf("g%d", i))
		require.NoError(t, err)
	}
}

func TestUnknownDriver(t *testing.T) {
	_, err := New("postgres", t.TempDir(), 0)
	assert.Error(t, err)
}
