// Package hosts edits the system host-mapping file (/etc/hosts).
//
// Only the lines that mention the managed host change. Comments, blank lines
// and every other entry are written back exactly as they were read.
package hosts

import (
	"bytes"
	"io/fs"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// Defaults for the managed mapping.
const (
	DefaultPath    = "/etc/hosts"
	DefaultAddress = "127.0.0.1"
)

// Entry represents one line of a hosts file.
type Entry struct {
	Line      int      `json:"line"`
	IP        string   `json:"ip,omitempty"`
	Hostnames []string `json:"hostnames,omitempty"`
	Comment   string   `json:"comment,omitempty"`
	Raw       string   `json:"raw"`
	IsComment bool     `json:"isComment"`
}

// Has reports whether host is one of the entry's names.
func (e Entry) Has(host string) bool {
	return lo.Contains(e.Hostnames, host)
}

// parseLine splits one line into address, names and trailing comment.
// Blank and comment-only lines come back with IsComment set.
func parseLine(n int, raw string) Entry {
	entry := Entry{Line: n, Raw: raw}

	body := raw
	if i := strings.IndexByte(body, '#'); i >= 0 {
		entry.Comment = strings.TrimSpace(body[i+1:])
		body = body[:i]
	}

	fields := strings.Fields(body)
	if len(fields) < 2 {
		entry.IsComment = true
		return entry
	}
	entry.IP = fields[0]
	entry.Hostnames = fields[1:]
	return entry
}

func parse(data []byte) []Entry {
	text := strings.TrimSuffix(string(data), "\n")
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	entries := make([]Entry, 0, len(lines))
	for i, line := range lines {
		entries = append(entries, parseLine(i+1, line))
	}
	return entries
}

// File edits one hosts file.
type File struct {
	path string
}

// New returns a File for path. An empty path uses DefaultPath.
func New(path string) *File {
	if path == "" {
		path = DefaultPath
	}
	return &File{path: path}
}

// Path returns the file being edited
func (f *File) Path() string {
	return f.path
}

// Entries parses the file. A missing file has no entries.
func (f *File) Entries() ([]Entry, error) {
	data, err := f.read()
	if err != nil {
		return nil, err
	}
	return parse(data), nil
}

// Lookup returns every address host is mapped to.
func (f *File) Lookup(host string) ([]string, error) {
	entries, err := f.Entries()
	if err != nil {
		return nil, err
	}
	matched := lo.Filter(entries, func(e Entry, _ int) bool {
		return e.Has(host)
	})
	return lo.Uniq(lo.Map(matched, func(e Entry, _ int) string {
		return e.IP
	})), nil
}

// Add appends "<addr>\t<host>". It returns false without writing when host
// already maps to addr.
func (f *File) Add(host, addr string) (bool, error) {
	data, err := f.read()
	if err != nil {
		return false, err
	}

	exists := lo.ContainsBy(parse(data), func(e Entry) bool {
		return e.IP == addr && e.Has(host)
	})
	if exists {
		return false, nil
	}

	var line bytes.Buffer
	if len(data) > 0 && data[len(data)-1] != '\n' {
		line.WriteByte('\n')
	}
	line.WriteString(addr + "\t" + host + "\n")

	out, err := os.OpenFile(f.path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0644)
	if err != nil {
		return false, errors.Wrap(bare(err), "open")
	}
	if _, err := out.Write(line.Bytes()); err != nil {
		out.Close()
		return false, errors.Wrap(bare(err), "write")
	}
	if err := out.Close(); err != nil {
		return false, errors.Wrap(bare(err), "close")
	}
	return true, nil
}

// Remove drops host from the file. Lines naming only host are deleted and
// host is stripped from lines naming several hosts. It returns the number
// of lines changed.
func (f *File) Remove(host string) (int, error) {
	data, err := f.read()
	if err != nil {
		return 0, err
	}
	if len(data) == 0 {
		return 0, nil
	}

	lines := strings.SplitAfter(string(data), "\n")
	var kept strings.Builder
	changed := 0
	for i, line := range lines {
		content := strings.TrimSuffix(line, "\n")
		entry := parseLine(i+1, content)
		if entry.IsComment || !entry.Has(host) {
			kept.WriteString(line)
			continue
		}

		changed++
		rest := lo.Without(entry.Hostnames, host)
		if len(rest) == 0 {
			continue
		}
		kept.WriteString(rebuild(entry.IP, rest, entry.Comment))
		if strings.HasSuffix(line, "\n") {
			kept.WriteByte('\n')
		}
	}

	if changed == 0 {
		return 0, nil
	}
	if err := f.write([]byte(kept.String())); err != nil {
		return 0, err
	}
	return changed, nil
}

func rebuild(ip string, names []string, comment string) string {
	line := ip + "\t" + strings.Join(names, " ")
	if comment != "" {
		line += "\t# " + comment
	}
	return line
}

// read returns the file content; a missing file reads as empty.
func (f *File) read() ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.Wrap(bare(err), "read")
	}
	return data, nil
}

// write truncates the file in place. Replacing it by rename would break
// bind-mounted hosts files in containers.
func (f *File) write(data []byte) error {
	out, err := os.OpenFile(f.path, os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		return errors.Wrap(bare(err), "open")
	}
	if _, err := out.Write(data); err != nil {
		out.Close()
		return errors.Wrap(bare(err), "write")
	}
	return errors.Wrap(out.Close(), "close")
}

func bare(err error) error {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err
	}
	return err
}
