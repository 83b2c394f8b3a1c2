package streamio

import "testing"

func TestReadSequence(t *testing.T) {
	r := New([]byte{0x01, 0x02, 0x03, 0xFF, 0xFF, 0x10, 0x00, 0x00, 0x00})
	u8, err := r.ReadU8()
	if err != nil || u8 != 1 {
		t.Fatalf("ReadU8 = %v, %v", u8, err)
	}
	u16, err := r.ReadU16()
	if err != nil || u16 != 0x0302 {
		t.Fatalf("ReadU16 = %#x, %v", u16, err)
	}
	i16, err := r.ReadI16()
	if err != nil || i16 != -1 {
		t.Fatalf("ReadI16 = %v, %v", i16, err)
	}
	u32, err := r.ReadU32()
	if err != nil || u32 != 0x10 {
		t.Fatalf("ReadU32 = %#x, %v", u32, err)
	}
}

func TestReadPastEndFails(t *testing.T) {
	r := New([]byte{1, 2})
	if _, err := r.ReadU32(); err == nil {
		t.Error("expected READ error past end of buffer")
	}
}

func TestSeekAndSkip(t *testing.T) {
	r := New([]byte{1, 2, 3, 4, 5})
	if err := r.Seek(3); err != nil {
		t.Fatal(err)
	}
	if r.Remaining() != 2 {
		t.Errorf("Remaining() = %d, want 2", r.Remaining())
	}
	if err := r.Seek(-1); err == nil {
		t.Error("expected error seeking negative")
	}
	if err := r.Seek(100); err == nil {
		t.Error("expected error seeking past end")
	}
}
