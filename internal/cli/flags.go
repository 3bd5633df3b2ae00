package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/wanderplan/internal/domain"
	"github.com/spf13/pflag"
)

// dateValue is a pflag.Value for YYYY-MM-DD dates.
type dateValue struct {
	t *time.Time
}

var _ pflag.Value = (*dateValue)(nil)

func newDateValue(p *time.Time) *dateValue { return &dateValue{t: p} }

func (d *dateValue) String() string {
	if d.t == nil || d.t.IsZero() {
		return ""
	}
	return d.t.Format(domain.DateLayout)
}

func (d *dateValue) Set(s string) error {
	t, err := domain.ParseDate(s)
	if err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	*d.t = t
	return nil
}

func (d *dateValue) Type() string { return "date" }

// interestsValue collects --interest flags. Each occurrence may hold a comma
// separated list of identifiers or labels.
type interestsValue struct {
	set domain.InterestSet
}

var _ pflag.Value = (*interestsValue)(nil)

func (v *interestsValue) String() string {
	ids := make([]string, 0, v.set.Len())
	for _, i := range v.set.Sorted() {
		ids = append(ids, string(i))
	}
	return strings.Join(ids, ",")
}

func (v *interestsValue) Set(s string) error {
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		i, err := domain.ParseInterest(part)
		if err != nil {
			return err
		}
		v.set[i] = struct{}{}
	}
	return nil
}

func (v *interestsValue) Type() string { return "interest" }

type outputFormat string

const (
	formatText outputFormat = "text"
	formatJSON outputFormat = "json"
	formatYAML outputFormat = "yaml"
)

var _ pflag.Value = (*outputFormat)(nil)

func (f *outputFormat) String() string { return string(*f) }

func (f *outputFormat) Set(s string) error {
	switch outputFormat(strings.ToLower(s)) {
	case formatText, formatJSON, formatYAML:
		*f = outputFormat(strings.ToLower(s))
		return nil
	}
	return fmt.Errorf("must be one of text, json, yaml")
}

func (f *outputFormat) Type() string { return "format" }
