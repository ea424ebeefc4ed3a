package help_test

import (
	"testing"

	. "github.com/onsi/gomega"

	"github.com/toejough/argdef/internal/help"
	"github.com/toejough/argdef/internal/spec"
)

func TestRenderListsFlagsAndArguments(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	table := spec.Parse("-i,--id=args:dummy:1 --quiet $1,<command>=cmd")
	descs := spec.NewDescriptions()
	descs.Set("--id", "The id to use")

	out := help.Render("mytool", table, descs)

	g.Expect(out).To(ContainSubstring("mytool"))
	g.Expect(out).To(ContainSubstring("Flags:"))
	g.Expect(out).To(ContainSubstring("-i, --id <value>"))
	g.Expect(out).To(ContainSubstring("The id to use"))
	g.Expect(out).To(ContainSubstring("(default: dummy)"))
	g.Expect(out).To(ContainSubstring("--quiet"))
	g.Expect(out).To(ContainSubstring("Arguments:"))
	g.Expect(out).To(ContainSubstring("$1 <command>"))
}

func TestRenderRepeatsPlaceholderPerConsumedValue(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	table := spec.Parse("--pair=p::2")

	out := help.Render("x", table, spec.NewDescriptions())

	g.Expect(out).To(ContainSubstring("--pair <value> <value>"))
}

func TestRenderOmitsEmptySections(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	table := spec.Parse("--only")

	out := help.Render("x", table, spec.NewDescriptions())

	g.Expect(out).To(ContainSubstring("Flags:"))
	g.Expect(out).NotTo(ContainSubstring("Arguments:"))
}

func TestRenderFallbackTableShowsBuiltins(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	out := help.Render("x", spec.Parse(""), spec.NewDescriptions())

	g.Expect(out).To(ContainSubstring("--help"))
	g.Expect(out).To(ContainSubstring("--version"))
	g.Expect(out).To(ContainSubstring("--debug"))
}
