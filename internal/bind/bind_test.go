package bind_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	. "github.com/onsi/gomega"

	"github.com/toejough/argdef/internal/bind"
	"github.com/toejough/argdef/internal/spec"
)

func TestBooleanFlagBindsOne(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	table := spec.Parse("--verbose")

	result := bind.Bind([]string{"--verbose"}, table)

	g.Expect(result.Values["verbose"]).To(Equal(bind.Value{Str: "1", Source: bind.SourceFlag}))
	g.Expect(result.Diags).To(BeEmpty())
}

func TestAbsentFlagAppliesDefault(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	table := spec.Parse("-i,--id=args:dummy:1")

	result := bind.Bind(nil, table)

	g.Expect(result.Values["args"]).To(Equal(bind.Value{Str: "dummy", Source: bind.SourceDefault}))
}

func TestAbsentFlagWithoutDefaultStaysUnbound(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	table := spec.Parse("--id=args::1")

	result := bind.Bind(nil, table)

	g.Expect(result.Values).To(BeEmpty())
	g.Expect(result.Order).To(BeEmpty())
}

func TestExplicitEmptyValueBeatsDefault(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	// The alias is declared without dashes; the binder still resolves
	// the dashed spelling.
	table := spec.Parse("id=args:dummy:1")

	result := bind.Bind([]string{"--id="}, table)

	g.Expect(result.Values["args"]).To(Equal(bind.Value{Str: "", Source: bind.SourceEmpty}))
}

func TestAssignmentWithValueBinds(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	table := spec.Parse("-i,--id=args:dummy:1")

	result := bind.Bind([]string{"--id=42"}, table)

	g.Expect(result.Values["args"]).To(Equal(bind.Value{Str: "42", Source: bind.SourceFlag}))
}

func TestMultiValueFlagJoinsWithSpaces(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	table := spec.Parse("-i,--id=args:dummy:2")

	result := bind.Bind([]string{"--id", "first", "second"}, table)

	g.Expect(result.Values["args"].Str).To(Equal("first second"))
	g.Expect(result.Diags).To(BeEmpty())
}

func TestConsumptionIsDefinitionDriven(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	// The declared arity consumes the next token even when it looks
	// like another flag.
	table := spec.Parse("--id=args::1 --other")

	result := bind.Bind([]string{"--id", "--other"}, table)

	g.Expect(result.Values["args"].Str).To(Equal("--other"))
	g.Expect(result.Values).NotTo(HaveKey("other"))
}

func TestStarvationReportsErrorButKeepsGoing(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	table := spec.Parse("-i,--id=args:dummy:2 --later=later:fine")

	result := bind.Bind([]string{"--id", "only"}, table)

	g.Expect(result.Errors()).To(HaveLen(1))
	g.Expect(result.Errors()[0]).To(ContainSubstring("expects 2"))
	// Whatever tokens remained were still consumed and bound, and the
	// rest of the table was still processed.
	g.Expect(result.Values["args"].Str).To(Equal("only"))
	g.Expect(result.Values["later"].Str).To(Equal("fine"))
}

func TestPositionalOverflowBindsFirstTokenAndWarns(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	table := spec.Parse("$1,-i,--id=slot:dummy:2")

	result := bind.Bind([]string{"first", "second"}, table)

	g.Expect(result.Values["slot"]).To(Equal(bind.Value{Str: "first", Source: bind.SourcePositional}))

	warnings := result.Warnings()
	g.Expect(warnings).To(ContainElement(ContainSubstring("indexed variable")))
	g.Expect(warnings).To(ContainElement(ContainSubstring("second [$2]")))
}

func TestPositionalsFillInMarkerOrder(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	table := spec.Parse("$2=second $1=first")

	result := bind.Bind([]string{"a", "b"}, table)

	g.Expect(result.Values["first"].Str).To(Equal("a"))
	g.Expect(result.Values["second"].Str).To(Equal("b"))
}

func TestFlagHitWinsOverPositionalFill(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	table := spec.Parse("$1,-i,--id=slot::1")

	result := bind.Bind([]string{"-i", "x", "y"}, table)

	g.Expect(result.Values["slot"]).To(Equal(bind.Value{Str: "x", Source: bind.SourceFlag}))
	g.Expect(result.Warnings()).To(ContainElement(ContainSubstring("y [$1]")))
}

func TestUnrecognizedFlagsAreWarnedNotFatal(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	table := spec.Parse("--ok")

	result := bind.Bind([]string{"--nope=v", "--bare", "--ok"}, table)

	warnings := result.Warnings()
	g.Expect(warnings).To(HaveLen(2))
	g.Expect(warnings[0]).To(ContainSubstring("--nope (v)"))
	g.Expect(warnings[1]).To(ContainSubstring("--bare"))
	g.Expect(result.Values["ok"].Str).To(Equal("1"))
}

func TestSingleDashGoesToPositionalPool(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	table := spec.Parse("$1=input")

	result := bind.Bind([]string{"-"}, table)

	g.Expect(result.Values["input"].Str).To(Equal("-"))
}

func TestBindingIsIdempotent(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	table := spec.Parse("$1,-i,--id=slot:dummy:2 --flag -x,--extra=extra::1")
	argv := []string{"first", "--flag", "--extra", "e", "second", "--junk"}

	first := bind.Bind(argv, table)
	second := bind.Bind(argv, table)

	g.Expect(cmp.Diff(first, second)).To(BeEmpty())
}

func TestOrderFollowsBindingOrder(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	table := spec.Parse("--b=bee::1 --a --c=cee:fallback")

	result := bind.Bind([]string{"--a", "--b", "v"}, table)

	// Flag hits in argv order, then defaults in declaration order.
	g.Expect(result.Order).To(Equal([]string{"a", "bee", "cee"}))
	g.Expect(result.Values["cee"].Source).To(Equal(bind.SourceDefault))
}
