package fbox

import "fmt"

// fsTypeNameWidth is the fixed label width used by PaddedName.
const fsTypeNameWidth = 8

// FSType maps a filesystem magic number, as reported by statfs(2), to a
// human-readable label. Aliases lists other labels that share the magic.
type FSType struct {
	Name    string
	Magic   uint32
	Aliases []string
}

// Candidates returns every label the magic number may stand for, aliases
// first and the preferred Name last.
func (t FSType) Candidates() []string {
	out := make([]string, 0, len(t.Aliases)+1)
	out = append(out, t.Aliases...)
	return append(out, t.Name)
}

// PaddedName returns Name right-padded with spaces to the label width.
func (t FSType) PaddedName() string {
	return fmt.Sprintf("%-*s", fsTypeNameWidth, t.Name)
}

func (t FSType) String() string {
	return fmt.Sprintf("%s(%#x)", t.Name, t.Magic)
}

// Most of these constants come from linux/magic.h; a few are only found
// in the kernel sources of the respective filesystem.
//
// ext2, ext3 and ext4 share 0xEF53 and cannot be told apart by statfs, so
// a single entry carries all three labels and prefers EXT4.
var fsTypes = []FSType{
	{Name: "AUTOFS", Magic: 0x0187},
	{Name: "BINFMTFS", Magic: 0x42494E4D},
	{Name: "BPF", Magic: 0xCAFE4A11},
	{Name: "BTRFS", Magic: 0x9123683E},
	{Name: "CGROUP", Magic: 0x0027E0EB},
	{Name: "CGROUP2", Magic: 0x63677270},
	{Name: "CIFS", Magic: 0xFF534D42},
	{Name: "CONFIGFS", Magic: 0x62656570},
	{Name: "CRAMFS", Magic: 0x28CD3D45},
	{Name: "DEBUGFS", Magic: 0x64626720},
	{Name: "DEVFS", Magic: 0x1373},
	{Name: "DEVPTS", Magic: 0x1CD1},
	{Name: "ECRYPTFS", Magic: 0xF15F},
	{Name: "EFIVARFS", Magic: 0xDE5E81E4},
	{Name: "EXFAT", Magic: 0x2011BAB0},
	{Name: "EXT", Magic: 0x137D},
	{Name: "EXT2_OLD", Magic: 0xEF51},
	{Name: "EXT4", Magic: 0xEF53, Aliases: []string{"EXT2", "EXT3"}},
	{Name: "F2FS", Magic: 0xF2F52010},
	{Name: "FUSE", Magic: 0x65735546},
	{Name: "HUGETLBFS", Magic: 0x958458F6},
	{Name: "ISOFS", Magic: 0x9660},
	{Name: "JFFS2", Magic: 0x72B6},
	{Name: "MQUEUE", Magic: 0x19800202},
	{Name: "MSDOS", Magic: 0x4D44},
	{Name: "NFS", Magic: 0x6969},
	{Name: "NSFS", Magic: 0x6E736673},
	{Name: "NTFS", Magic: 0x5346544E},
	{Name: "OVERLAYFS", Magic: 0x794C7630},
	{Name: "PROC", Magic: 0x9FA0},
	{Name: "PSTORE", Magic: 0x6165676C},
	{Name: "RAMFS", Magic: 0x858458F6},
	{Name: "ROMFS", Magic: 0x7275},
	{Name: "SECURITYFS", Magic: 0x73636673},
	{Name: "SELINUX", Magic: 0xF97CFF8C},
	{Name: "SMB", Magic: 0x517B},
	{Name: "SMB2", Magic: 0xFE534D42},
	{Name: "SOCKFS", Magic: 0x534F434B},
	{Name: "SQUASHFS", Magic: 0x73717368},
	{Name: "SYSFS", Magic: 0x62656572},
	{Name: "TMPFS", Magic: 0x01021994},
	{Name: "TRACEFS", Magic: 0x74726163},
	{Name: "V9FS", Magic: 0x01021997},
	{Name: "XFS", Magic: 0x58465342},
	{Name: "ZFS", Magic: 0x2FC12FC1},
}

// LookupFSType resolves a filesystem magic number. It reports false when
// the magic is not registered.
func LookupFSType(magic uint32) (FSType, bool) {
	for _, t := range fsTypes {
		if t.Magic == magic {
			return t, true
		}
	}
	return FSType{}, false
}

// FSTypes returns a copy of the registry.
func FSTypes() []FSType {
	out := make([]FSType, 0, len(fsTypes))
	for _, t := range fsTypes {
		t.Aliases = append([]string(nil), t.Aliases...)
		out = append(out, t)
	}
	return out
}
