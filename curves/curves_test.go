package curves

import (
	"testing"

	"github.com/vault-crypto/ecgroup/scalarmult"
)

func TestByNameKnownCurve(t *testing.T) {
	c, ok := ByName("secp256k1")
	if !ok {
		t.Fatal("secp256k1 not registered")
	}
	if c.Name != "secp256k1" {
		t.Errorf("Name = %q, want secp256k1", c.Name)
	}
}

func TestByNameUnknownCurve(t *testing.T) {
	if _, ok := ByName("not-a-curve"); ok {
		t.Fatal("expected ok=false for unregistered name")
	}
}

func TestAllContainsToyAndNamedCurves(t *testing.T) {
	all := All()
	if len(all) != len(curveSpecs)+len(toySpecs) {
		t.Errorf("len(All()) = %d, want %d", len(all), len(curveSpecs)+len(toySpecs))
	}
	seen := make(map[string]bool, len(all))
	for _, c := range all {
		seen[c.Name] = true
	}
	for _, spec := range curveSpecs {
		if !seen[spec.name] {
			t.Errorf("All() missing %q", spec.name)
		}
	}
}

func TestToyReturnsOnlyToyCurves(t *testing.T) {
	toy := Toy()
	if len(toy) != len(toySpecs) {
		t.Errorf("len(Toy()) = %d, want %d", len(toy), len(toySpecs))
	}
	for _, c := range toy {
		found := false
		for _, spec := range toySpecs {
			if spec.name == c.Name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Toy() returned %q, not a toy curve", c.Name)
		}
	}
}

// TestGeneratorsOnCurve and TestOrderAnnihilatesGenerator mirror the
// reference test suite's all-curves sweep (testAllCurves in
// original_source/btclib/tests/test_curve.py): every registered curve's
// base point must lie on the curve, and n·G must vanish.
func TestGeneratorsOnCurve(t *testing.T) {
	for _, c := range All() {
		c := c
		t.Run(c.Name, func(t *testing.T) {
			t.Parallel()
			ok, err := c.IsOnCurve(c.G)
			if err != nil {
				t.Fatalf("IsOnCurve(G): %v", err)
			}
			if !ok {
				t.Fatal("generator not on curve")
			}
		})
	}
}

func TestOrderAnnihilatesGenerator(t *testing.T) {
	for _, c := range All() {
		c := c
		t.Run(c.Name, func(t *testing.T) {
			t.Parallel()
			got, err := scalarmult.Mult(c.CurveGroup, c.N, c.G)
			if err != nil {
				t.Fatalf("Mult(n, G): %v", err)
			}
			if !(got.X.EqZero() && got.Y.EqZero()) {
				t.Errorf("n*G = (%v, %v), want infinity", got.X, got.Y)
			}
		})
	}
}

func TestToyCurvesHaveNonzeroCofactor(t *testing.T) {
	for _, c := range Toy() {
		if c.H == 0 {
			t.Errorf("%s: cofactor must be nonzero", c.Name)
		}
	}
}
