package ad796x

import (
	"fmt"

	"go.uber.org/multierr"
)

// TeardownPolicy selects how Remove reacts to a release failure.
type TeardownPolicy int

const (
	// TeardownFailFast stops at the first release failure and returns it.
	// Resources after the failing one stay held; calling Remove again resumes there.
	TeardownFailFast TeardownPolicy = iota

	// TeardownReleaseAll attempts every release and returns all failures combined.
	TeardownReleaseAll
)

func (p TeardownPolicy) String() string {
	switch p {
	case TeardownFailFast:
		return "fail-fast"
	case TeardownReleaseAll:
		return "release-all"
	default:
		return fmt.Sprintf("TeardownPolicy(%d)", int(p))
	}
}

// resource is one acquired sub-resource and the function that releases it.
type resource struct {
	name    string
	release func() error
}

// resourceStack records sub-resources in acquisition order.
type resourceStack []resource

func (s *resourceStack) push(name string, release func() error) {
	*s = append(*s, resource{name: name, release: release})
}

// unwind releases the recorded resources in reverse order.
// Released entries are popped. Under TeardownFailFast the failing entry and everything
// below it are kept; under TeardownReleaseAll every entry is popped and failures are combined.
func (s *resourceStack) unwind(policy TeardownPolicy) error {
	var errs error

	for len(*s) > 0 {
		top := (*s)[len(*s)-1]

		if err := top.release(); err != nil {
			err = fmt.Errorf("%s remove: %w", top.name, err)
			if policy == TeardownFailFast {
				return err
			}

			errs = multierr.Append(errs, err)
		}

		*s = (*s)[:len(*s)-1]
	}

	return errs
}
