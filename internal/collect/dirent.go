package collect

import "unsafe"

// Linux dirent64 layout:
//
//	struct linux_dirent64 {
//	    ino64_t        d_ino;
//	    off64_t        d_off;
//	    unsigned short d_reclen;
//	    unsigned char  d_type;
//	    char           d_name[];
//	};

// File type constants from dirent.h.
const (
	dtUnknown = 0
	dtFifo    = 1
	dtChr     = 2
	dtDir     = 4
	dtBlk     = 6
	dtReg     = 8
	dtLnk     = 10
	dtSock    = 12
)

// dirent is one parsed directory entry.
type dirent struct {
	name string
	typ  uint8
}

// parseDirents parses raw getdents64 output into dirents, dropping the
// "." and ".." pseudo-entries. dst is reused to avoid per-call slice
// allocation; pass nil on first call.
func parseDirents(buf []byte, n int, dst []dirent) []dirent {
	entries := dst[:0]
	offset := 0

	for offset < n {
		// Fixed header is 19 bytes before d_name.
		if offset+19 > n {
			break
		}

		reclen := *(*uint16)(unsafe.Pointer(&buf[offset+16]))
		typ := buf[offset+18]

		if reclen == 0 {
			break // prevent infinite loop on a corrupt buffer
		}

		nameStart := offset + 19
		nameEnd := offset + int(reclen)
		if nameEnd > n {
			nameEnd = n
		}

		nameBytes := buf[nameStart:nameEnd]
		nameLen := 0
		for nameLen < len(nameBytes) && nameBytes[nameLen] != 0 {
			nameLen++
		}
		name := string(nameBytes[:nameLen])

		if name != "." && name != ".." {
			entries = append(entries, dirent{name: name, typ: typ})
		}

		offset += int(reclen)
	}

	return entries
}

// joinPath concatenates a directory and entry name with a single separator.
// Avoids filepath.Join overhead (no Clean, no validation): dir is always a
// valid directory path and name a plain filename.
func joinPath(dir, name string) string {
	needsSep := len(dir) == 0 || dir[len(dir)-1] != '/'
	n := len(dir) + len(name)
	if needsSep {
		n++
	}
	buf := make([]byte, n)
	copy(buf, dir)
	i := len(dir)
	if needsSep {
		buf[i] = '/'
		i++
	}
	copy(buf[i:], name)
	return unsafe.String(&buf[0], len(buf))
}
