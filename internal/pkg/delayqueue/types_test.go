package delayqueue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTask_Member(t *testing.T) {
	t.Parallel()
	task := Task{InstanceID: 123456789, DueAt: time.Unix(1_700_000_000, 0).UTC()}
	assert.Equal(t, "123456789:1700000000", task.member())

	got, err := parseMember(task.member())
	require.NoError(t, err)
	assert.Equal(t, task, got)
}

func TestParseMember_Invalid(t *testing.T) {
	t.Parallel()
	for _, m := range []string{"", "abc", "1:abc", "abc:1", "-1:1"} {
		_, err := parseMember(m)
		assert.Error(t, err, m)
	}
}

func TestTask_Expired(t *testing.T) {
	t.Parallel()
	due := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	task := Task{InstanceID: 1, DueAt: due}
	testCases := []struct {
		name    string
		now     time.Time
		expires time.Duration
		want    bool
	}{
		{name: "不过期", now: due.Add(time.Hour * 24 * 365), want: false},
		{name: "有效期内", now: due.Add(time.Minute), expires: time.Hour, want: false},
		{name: "正好到期", now: due.Add(time.Hour), expires: time.Hour, want: false},
		{name: "已经过期", now: due.Add(time.Hour + time.Second), expires: time.Hour, want: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, task.Expired(tc.now, tc.expires))
		})
	}
}
