package steg

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// fiveDictFixture matches the worked example in this tool's design notes: five
// dictionaries of sizes 3, 4, 5, 4, 3 (effective sizes, after /Type pinning,
// 2, 3, 4, 3, 2), whose per-dictionary capacities 1+2+4+2+1 sum to 10 bits,
// i.e. one byte of document capacity.
const fiveDictFixture = "%PDF-1.4\n" +
	"1 0 obj\n<< /Type /A /K1 1 /K2 2 >>\nendobj\n" +
	"2 0 obj\n<< /Type /B /K1 1 /K2 2 /K3 3 >>\nendobj\n" +
	"3 0 obj\n<< /Type /C /K1 1 /K2 2 /K3 3 /K4 4 >>\nendobj\n" +
	"4 0 obj\n<< /Type /D /K1 1 /K2 2 /K3 3 >>\nendobj\n" +
	"5 0 obj\n<< /Type /E /K1 1 /K2 2 >>\nendobj\n" +
	"trailer\n<< /Root 1 0 R /Size 6 >>\n%%EOF\n"

func TestCapacityMatchesWorkedExample(t *testing.T) {
	n, err := Capacity([]byte(fiveDictFixture))
	if err != nil {
		t.Fatalf("Capacity: %v", err)
	}
	if n != 1 {
		t.Fatalf("Capacity = %d, want 1", n)
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	payload := []byte{0xA5}
	out, err := Write([]byte(fiveDictFixture), payload)
	require.NoError(t, err)

	got, warnings, err := Read(out)
	require.NoError(t, err)
	require.Empty(t, warnings)
	require.NotEmpty(t, got)
	require.Equal(t, payload[0], got[0])
}

func TestWriteExceedsCapacityReturnsCapacityError(t *testing.T) {
	payload := []byte{0x01, 0x02}
	_, err := Write([]byte(fiveDictFixture), payload)
	if err == nil {
		t.Fatalf("expected a capacity error, got nil")
	}
	var stegErr *StegError
	if !errors.As(err, &stegErr) {
		t.Fatalf("error is not a *StegError: %v", err)
	}
	if stegErr.Code != ErrCodeCapacity {
		t.Fatalf("Code = %v, want ErrCodeCapacity", stegErr.Code)
	}
	if stegErr.CapacityBytes != 1 {
		t.Fatalf("CapacityBytes = %d, want 1", stegErr.CapacityBytes)
	}
}

func TestReadEmitsCeilCapacityBits8Bytes(t *testing.T) {
	got, _, err := Read([]byte(fiveDictFixture))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	// capacity is 10 bits -> ceil(10/8) = 2 bytes recovered even with no payload.
	if len(got) != 2 {
		t.Fatalf("Read emitted %d bytes, want 2", len(got))
	}
}

func TestSmallDictionaryHasZeroCapacity(t *testing.T) {
	src := "%PDF-1.4\n1 0 obj\n<< /Type /A >>\nendobj\n" +
		"trailer\n<< /Root 1 0 R /Size 2 >>\n%%EOF\n"
	n, err := Capacity([]byte(src))
	if err != nil {
		t.Fatalf("Capacity: %v", err)
	}
	if n != 0 {
		t.Fatalf("Capacity = %d, want 0", n)
	}

	if _, err := Write([]byte(src), []byte{0x01}); err == nil {
		t.Fatalf("expected capacity error writing a non-empty payload to a zero-capacity document")
	}

	got, _, err := Read([]byte(src))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("Read on zero-capacity document = %v, want empty", got)
	}
}

func TestMalformedTypeNotFirstProducesWarning(t *testing.T) {
	src := "%PDF-1.4\n1 0 obj\n<< /K1 1 /Type /A /K2 2 /K3 3 >>\nendobj\n" +
		"trailer\n<< /Root 1 0 R /Size 2 >>\n%%EOF\n"
	_, warnings, err := Read([]byte(src))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("got %d warnings, want 1", len(warnings))
	}
}

func TestWriteWithOptionsOverridesVersion(t *testing.T) {
	out, err := WriteWithOptions([]byte(fiveDictFixture), []byte{0xA5}, Options{
		Mode:    0,
		Version: "1.7",
	})
	require.NoError(t, err)
	require.Contains(t, string(out), "%PDF-1.7\n")

	got, _, err := Read(out)
	require.NoError(t, err)
	require.Equal(t, byte(0xA5), got[0])
}

func TestWriteWithOptionsVerboseDoesNotAffectOutputBytes(t *testing.T) {
	payload := []byte{0xA5}
	quiet, err := WriteWithOptions([]byte(fiveDictFixture), payload, Options{})
	require.NoError(t, err)
	loud, err := WriteWithOptions([]byte(fiveDictFixture), payload, Options{Verbose: true})
	require.NoError(t, err)
	require.Equal(t, quiet, loud)
}
