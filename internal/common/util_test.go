package common

import (
	"testing"
)

// ---------- WipeByteArray ----------

func TestWipeByteArray_ZerosBuffer(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5}
	WipeByteArray(buf)
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("expected buf[%d]==0, got %d", i, v)
		}
	}
}

func TestWipeByteArray_NilSafe(t *testing.T) {
	WipeByteArray(nil)
}

// ---------- CloneBytes ----------

func TestCloneBytes_Independent(t *testing.T) {
	src := []byte("secret")
	dst := CloneBytes(src)
	if string(dst) != "secret" {
		t.Fatalf("unexpected copy %q", dst)
	}
	WipeByteArray(src)
	if string(dst) != "secret" {
		t.Fatalf("copy must not share memory with source, got %q", dst)
	}
}

func TestCloneBytes_EmptyIsNil(t *testing.T) {
	if CloneBytes(nil) != nil || CloneBytes([]byte{}) != nil {
		t.Fatalf("expected nil for empty input")
	}
}
