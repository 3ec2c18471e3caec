package report

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func section(title, out string, err error) SectionFunc {
	return SectionFunc{Title: title, Fn: func(ctx context.Context) (string, error) {
		return out, err
	}}
}

func TestRun_RegistrationOrder(t *testing.T) {
	m := NewManager()
	m.Register(section("beta", "2", nil))
	m.Register(section("alpha", "1", nil))
	m.Register(section("gamma", "3", nil))

	got := m.Run(context.Background())
	if !(strings.Index(got, "beta") < strings.Index(got, "alpha") &&
		strings.Index(got, "alpha") < strings.Index(got, "gamma")) {
		t.Errorf("sections out of registration order:\n%s", got)
	}
}

func TestRun_FailedSectionDegrades(t *testing.T) {
	m := NewManager()
	m.Register(section("ok", "fine", nil))
	m.Register(section("broken", "", errors.New("backend down")))
	m.Register(section("also ok", "still fine", nil))

	got := m.Run(context.Background())
	for _, want := range []string{"fine", "(unavailable: backend down)", "still fine"} {
		if !strings.Contains(got, want) {
			t.Errorf("report missing %q:\n%s", want, got)
		}
	}
}

func TestRegister_ReplaceKeepsPosition(t *testing.T) {
	m := NewManager()
	m.Register(section("first", "old", nil))
	m.Register(section("second", "2", nil))
	m.Register(section("first", "new", nil))

	got := m.Run(context.Background())
	if strings.Contains(got, "old") {
		t.Errorf("replaced section still renders old output:\n%s", got)
	}
	if strings.Index(got, "new") > strings.Index(got, "2") {
		t.Errorf("replaced section lost its position:\n%s", got)
	}
}
