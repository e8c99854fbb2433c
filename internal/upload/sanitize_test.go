package upload

import "testing"

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"road.jpg":                   "road.jpg",
		"My cool movie.mov":          "My_cool_movie.mov",
		"../../../etc/passwd":        "etc_passwd",
		"i contain cool ümläuts.txt": "i_contain_cool_umlauts.txt",
		"  .hidden.png":              "hidden.png",
		"../../":                     "",
		"photo (1).jpeg":             "photo_1.jpeg",
	}
	for in, want := range cases {
		for _, windows := range []bool{false, true} {
			if got := sanitizeFilename(in, windows); got != want {
				t.Errorf("sanitizeFilename(%q, %v) = %q, want %q", in, windows, got, want)
			}
		}
	}
}

func TestSanitizeFilenamePOSIX(t *testing.T) {
	cases := map[string]string{
		`a\b.jpg`:               "ab.jpg",
		`..\..\windows\win.ini`: "windowswin.ini",
		"CON.txt":               "CON.txt",
	}
	for in, want := range cases {
		if got := sanitizeFilename(in, false); got != want {
			t.Errorf("sanitizeFilename(%q, false) = %q, want %q", in, got, want)
		}
	}
}

func TestSanitizeFilenameWindows(t *testing.T) {
	cases := map[string]string{
		`a\b.jpg`:               "a_b.jpg",
		`..\..\windows\win.ini`: "windows_win.ini",
		"CON.txt":               "_CON.txt",
		"lpt1":                  "_lpt1",
	}
	for in, want := range cases {
		if got := sanitizeFilename(in, true); got != want {
			t.Errorf("sanitizeFilename(%q, true) = %q, want %q", in, got, want)
		}
	}
}
