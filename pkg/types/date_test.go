package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("1990-06-15")
	require.NoError(t, err)
	assert.Equal(t, "1990-06-15", d.String())

	for _, bad := range []string{"", "15-06-1990", "1990/06/15", "1990-13-01", "not-a-date"} {
		_, err := ParseDate(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestDateJSON(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		type wrapper struct {
			BirthDate Date `json:"birthDate"`
		}
		in := wrapper{BirthDate: NewDate(1990, time.June, 15)}
		b, err := json.Marshal(in)
		require.NoError(t, err)
		assert.JSONEq(t, `{"birthDate":"1990-06-15"}`, string(b))

		var out wrapper
		require.NoError(t, json.Unmarshal(b, &out))
		assert.Equal(t, in.BirthDate, out.BirthDate)
	})

	t.Run("zero marshals as null", func(t *testing.T) {
		b, err := json.Marshal(Date{})
		require.NoError(t, err)
		assert.Equal(t, "null", string(b))
	})

	t.Run("null and empty unmarshal to zero", func(t *testing.T) {
		for _, in := range []string{"null", `""`} {
			var d Date
			require.NoError(t, json.Unmarshal([]byte(in), &d))
			assert.True(t, d.IsZero(), "input %s", in)
		}
	})

	t.Run("rejects non-date strings", func(t *testing.T) {
		var d Date
		assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &d))
		assert.Error(t, json.Unmarshal([]byte(`12345`), &d))
	})
}

func TestDateSQL(t *testing.T) {
	t.Run("value binds the underlying time", func(t *testing.T) {
		v, err := NewDate(1990, time.June, 15).Value()
		require.NoError(t, err)
		assert.Equal(t, time.Date(1990, time.June, 15, 0, 0, 0, 0, time.UTC), v)
	})

	t.Run("zero value binds NULL", func(t *testing.T) {
		v, err := Date{}.Value()
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("scan truncates timestamps to the day", func(t *testing.T) {
		var d Date
		require.NoError(t, d.Scan(time.Date(1990, time.June, 15, 13, 45, 0, 0, time.UTC)))
		assert.Equal(t, "1990-06-15", d.String())
	})

	t.Run("scan accepts strings and NULL", func(t *testing.T) {
		var d Date
		require.NoError(t, d.Scan("1990-06-15"))
		assert.Equal(t, "1990-06-15", d.String())

		require.NoError(t, d.Scan(nil))
		assert.True(t, d.IsZero())

		assert.Error(t, d.Scan(42))
	})
}

func TestYearsSince(t *testing.T) {
	now := time.Date(2026, time.September, 1, 10, 0, 0, 0, time.UTC)

	cases := []struct {
		birth Date
		want  int
	}{
		{NewDate(2008, time.September, 1), 18}, // anniversary today
		{NewDate(2008, time.September, 2), 17}, // anniversary tomorrow
		{NewDate(2008, time.August, 31), 18},   // anniversary yesterday
		{NewDate(2008, time.December, 25), 17},
		{NewDate(1990, time.January, 1), 36},
		{NewDate(2026, time.September, 1), 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.birth.YearsSince(now), "birth=%s", tc.birth)
	}
}
