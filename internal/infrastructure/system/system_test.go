package system

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestUUIDGeneratorMintsDistinctIDs(t *testing.T) {
	gen := UUIDGenerator{}
	a, b := gen.NewID(), gen.NewID()
	if a == b {
		t.Fatalf("expected distinct ids, got %s twice", a)
	}
	if _, err := uuid.Parse(a); err != nil {
		t.Fatalf("NewID() = %q is not a uuid: %v", a, err)
	}
}

func TestClockIsUTC(t *testing.T) {
	if loc := (Clock{}).Now().Location(); loc != time.UTC {
		t.Fatalf("Now() location = %v, want UTC", loc)
	}
}
