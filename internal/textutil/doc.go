// Package textutil provides filename sanitization shared by the subtitle
// naming code and the archive writer.
//
// The forbidden set covers the reserved characters of the filesystems this
// tool commonly writes to (ext4, NTFS, SMB shares, exFAT): path separators,
// wildcard and shell-meaningful punctuation, DEL, and the C0 control bytes.
package textutil
