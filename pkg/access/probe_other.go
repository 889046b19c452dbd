//go:build !unix

package access

import "os"

// probe approximates access checks from permission bits where faccessat
// is unavailable.
func probe(path string, mode Mode) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	perm := info.Mode().Perm()
	if mode&Read != 0 && perm&0444 == 0 {
		return false, nil
	}
	if mode&Write != 0 && perm&0222 == 0 {
		return false, nil
	}
	if mode&Exec != 0 && perm&0111 == 0 {
		return false, nil
	}
	return true, nil
}
