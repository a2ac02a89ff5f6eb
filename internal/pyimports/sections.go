package pyimports

import "strings"

// Section is an isort import section.
type Section int

const (
	Future Section = iota
	Stdlib
	ThirdParty
	FirstParty
	LocalFolder
)

var sectionNames = [...]string{"FUTURE", "STDLIB", "THIRDPARTY", "FIRSTPARTY", "LOCALFOLDER"}

func (s Section) String() string {
	if s < 0 || int(s) >= len(sectionNames) {
		return "UNKNOWN"
	}
	return sectionNames[s]
}

// Options configures section placement.
type Options struct {
	// FirstParty lists top-level packages that belong to the project itself.
	FirstParty []string
}

// SectionOf places a module in its section.
func (o Options) SectionOf(module string) Section {
	if strings.HasPrefix(module, ".") {
		return LocalFolder
	}
	top, _, _ := strings.Cut(module, ".")
	switch {
	case top == "__future__":
		return Future
	case contains(o.FirstParty, top):
		return FirstParty
	case stdlibModules[top]:
		return Stdlib
	default:
		return ThirdParty
	}
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

// stdlibModules holds the top-level modules of the Python 3 standard library.
var stdlibModules = toSet(`
abc aifc argparse array ast asynchat asyncio asyncore atexit audioop
base64 bdb binascii bisect builtins bz2 calendar cgi cgitb chunk cmath cmd
code codecs codeop collections colorsys compileall concurrent configparser
contextlib contextvars copy copyreg cProfile crypt csv ctypes curses
dataclasses datetime dbm decimal difflib dis doctest email encodings
ensurepip enum errno faulthandler fcntl filecmp fileinput fnmatch fractions
ftplib functools gc getopt getpass gettext glob graphlib grp gzip hashlib
heapq hmac html http idlelib imaplib imghdr importlib inspect io ipaddress
itertools json keyword lib2to3 linecache locale logging lzma mailbox mailcap
marshal math mimetypes mmap modulefinder msilib msvcrt multiprocessing
netrc nis nntplib ntpath numbers opcode operator optparse os ossaudiodev
pathlib pdb pickle pickletools pipes pkgutil platform plistlib poplib posix
posixpath pprint profile pstats pty pwd py_compile pyclbr pydoc pydoc_data
pyexpat queue quopri random re readline reprlib resource rlcompleter runpy
sched secrets select selectors shelve shlex shutil signal site smtplib
sndhdr socket socketserver spwd sqlite3 sre_compile sre_constants sre_parse
ssl stat statistics string stringprep struct subprocess sunau symtable sys
sysconfig syslog tabnanny tarfile telnetlib tempfile termios textwrap
threading time timeit tkinter token tokenize tomllib trace traceback
tracemalloc tty turtle turtledemo types typing unicodedata unittest urllib
uu uuid venv warnings wave weakref webbrowser winreg winsound wsgiref
xdrlib xml xmlrpc zipapp zipfile zipimport zlib zoneinfo
`)

func toSet(words string) map[string]bool {
	set := map[string]bool{}
	for _, w := range strings.Fields(words) {
		set[w] = true
	}
	return set
}
