package subtitles

import "testing"

func TestDefaultRegistryClassify(t *testing.T) {
	tests := []struct {
		codec string
		ext   string
		ok    bool
	}{
		{"S_TEXT/UTF8", "srt", true},
		{"S_TEXT/ASS", "ass", true},
		{"S_TEXT/SSA", "ssa", true},
		{"S_TEXT/WEBVTT", "vtt", true},
		{"S_VOBSUB", "sub", true},
		{"S_HDMV/PGS", "sup", true},
		{"S_HDMV/TEXTST", "textst", true},
		{"S_DVBSUB", "dvb", true},
		{"V_MPEG4/ISO/AVC", "", false},
		{"A_AAC", "", false},
		{"", "", false},
		{"s_text/utf8", "", false},
	}
	reg := DefaultRegistry()
	for _, tt := range tests {
		ext, ok := reg.Classify(tt.codec)
		if ext != tt.ext || ok != tt.ok {
			t.Errorf("Classify(%q) = (%q, %v), want (%q, %v)", tt.codec, ext, ok, tt.ext, tt.ok)
		}
	}
}

func TestRegistryIsIsolatedFromInput(t *testing.T) {
	entries := map[string]string{"S_TEXT/UTF8": ".srt", " ": "x", "S_X": ""}
	reg := NewRegistry(entries)
	entries["S_TEXT/UTF8"] = "txt"

	if ext, _ := reg.Classify("S_TEXT/UTF8"); ext != "srt" {
		t.Fatalf("expected srt, got %q", ext)
	}
	if codecs := reg.Codecs(); len(codecs) != 1 {
		t.Fatalf("expected blank entries to be dropped, got %v", codecs)
	}
}

func TestNilRegistryClassifiesNothing(t *testing.T) {
	var reg *Registry
	if _, ok := reg.Classify("S_TEXT/UTF8"); ok {
		t.Fatal("nil registry should not classify")
	}
	if reg.Codecs() != nil {
		t.Fatal("nil registry should list no codecs")
	}
}

func TestCodecsSortedCopy(t *testing.T) {
	codecs := DefaultRegistry().Codecs()
	if len(codecs) != 8 {
		t.Fatalf("expected 8 codecs, got %d", len(codecs))
	}
	for i := 1; i < len(codecs); i++ {
		if codecs[i-1] > codecs[i] {
			t.Fatalf("codecs not sorted: %v", codecs)
		}
	}
	codecs[0] = "mutated"
	if DefaultRegistry().Codecs()[0] == "mutated" {
		t.Fatal("Codecs should return a copy")
	}
}
