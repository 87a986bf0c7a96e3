package users

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Header is the column order of tabular user stores.
var Header = []string{
	"username",
	"password_hash",
	"email",
	"created_at",
	"last_login",
	"role",
	"tests_completed",
	"correct_answers",
	"total_questions",
}

// TimeLayout is the timestamp format written to file and sheet stores.
const TimeLayout = "2006-01-02 15:04:05"

// FormatTime renders t in TimeLayout, local time.
func FormatTime(t time.Time) string {
	return t.Local().Format(TimeLayout)
}

// ParseTime parses a TimeLayout timestamp in local time. RFC 3339 values
// are accepted too.
func ParseTime(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(TimeLayout, s, time.Local); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// EncodeRow renders u as a row in Header order.
func EncodeRow(u User) []string {
	lastLogin := ""
	if u.LastLoginAt != nil {
		lastLogin = FormatTime(*u.LastLoginAt)
	}
	return []string{
		u.Username,
		u.PasswordDigest,
		u.Email,
		FormatTime(u.CreatedAt),
		lastLogin,
		string(u.Role),
		strconv.Itoa(u.Stats.TestsCompleted),
		strconv.Itoa(u.Stats.CorrectAnswers),
		strconv.Itoa(u.Stats.TotalQuestions),
	}
}

// DecodeRow parses a row in Header order. Trailing empty cells may be
// missing, as sheet APIs trim them.
func DecodeRow(row []string) (User, error) {
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	u := User{
		Username:       cell(0),
		PasswordDigest: cell(1),
		Email:          cell(2),
		Role:           Role(cell(5)),
	}

	var err error
	if u.CreatedAt, err = ParseTime(cell(3)); err != nil {
		return User{}, fmt.Errorf("created_at: %w", err)
	}
	if s := cell(4); s != "" {
		t, err := ParseTime(s)
		if err != nil {
			return User{}, fmt.Errorf("last_login: %w", err)
		}
		u.LastLoginAt = &t
	}

	counters := []*int{&u.Stats.TestsCompleted, &u.Stats.CorrectAnswers, &u.Stats.TotalQuestions}
	for i, dst := range counters {
		s := cell(6 + i)
		if s == "" {
			continue
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return User{}, fmt.Errorf("%s: %w", Header[6+i], err)
		}
		*dst = n
	}

	if err := u.Validate(); err != nil {
		return User{}, err
	}
	return u, nil
}
