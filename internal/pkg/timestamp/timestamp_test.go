package timestamp

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    time.Time
		wantErr bool
	}{
		{"ZoneLess", "2030-05-01T10:30:00", time.Date(2030, 5, 1, 10, 30, 0, 0, time.UTC), false},
		{"RFC3339", "2030-05-01T12:30:00+02:00", time.Date(2030, 5, 1, 10, 30, 0, 0, time.UTC), false},
		{"FractionalTruncated", "2030-05-01T10:30:00.750Z", time.Date(2030, 5, 1, 10, 30, 0, 0, time.UTC), false},
		{"Garbage", "tomorrow", time.Time{}, true},
		{"DateOnly", "2030-05-01", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got.Time), "got %s", got)
		})
	}
}

func TestJSON(t *testing.T) {
	type payload struct {
		Start Time  `json:"start"`
		End   *Time `json:"end"`
	}

	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"start":"2030-01-02T03:04:05","end":null}`), &p))
	assert.Equal(t, "2030-01-02T03:04:05", p.Start.String())
	assert.Nil(t, p.End)

	out, err := json.Marshal(payload{Start: From(time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC))})
	require.NoError(t, err)
	assert.JSONEq(t, `{"start":"2030-01-02T03:04:05","end":null}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"start":12}`), &p))
}
