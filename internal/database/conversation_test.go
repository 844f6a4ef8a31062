package database

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
)

func TestNormalizePair(t *testing.T) {
	a := uuid.New()
	b := uuid.New()

	oneA, twoA := NormalizePair(a, b)
	oneB, twoB := NormalizePair(b, a)

	if oneA != oneB || twoA != twoB {
		t.Fatalf("normalization is order dependent: (%s, %s) vs (%s, %s)", oneA, twoA, oneB, twoB)
	}
	if bytes.Compare(oneA[:], twoA[:]) > 0 {
		t.Fatalf("pair not ordered: %s before %s", oneA, twoA)
	}

	one, two := NormalizePair(a, a)
	if one != a || two != a {
		t.Fatalf("identical pair changed: (%s, %s)", one, two)
	}
}
