package output

import "testing"

func TestListFormatterPlain(t *testing.T) {
	f := NewListFormatter(NoStyles())

	var buf []byte
	buf = f.AppendEntry(buf, "/fw/boot.img", 4096)
	buf = f.AppendEntry(buf, "/fw/modem.img", 128)
	buf = f.AppendSummary(buf, 2, 4224)

	want := "/fw/boot.img  4096\n/fw/modem.img  128\n2 files, 4224 bytes\n"
	if string(buf) != want {
		t.Errorf("output = %q, want %q", buf, want)
	}
}
