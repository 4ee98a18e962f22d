package workbook

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// copyFile copies src to dst byte for byte, keeping the source file mode.
// Copying a file onto itself is a no-op.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}
	if out, err := os.Stat(dst); err == nil && os.SameFile(info, out) {
		return nil
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// rewriteArchive replaces the content of the named entries of the zip at
// path. Entries keep their order; untouched entries are copied without
// recompression and replaced entries keep their original header fields.
// Replacements for names the archive lacks are appended in name order.
func rewriteArchive(path string, replacements map[string][]byte) error {
	r, err := zip.OpenReader(path)
	if err != nil {
		return fmt.Errorf("open archive %s: %w", path, err)
	}
	defer r.Close()

	tmp, err := os.CreateTemp(filepath.Dir(path), ".rewrite-*.xlsx")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	zw := zip.NewWriter(tmp)
	written := make(map[string]bool, len(replacements))
	for _, f := range r.File {
		if data, ok := replacements[f.Name]; ok {
			if err := writeReplaced(zw, f.FileHeader, data); err != nil {
				return fmt.Errorf("write %s: %w", f.Name, err)
			}
			written[f.Name] = true
			continue
		}
		if err := copyRaw(zw, f); err != nil {
			return fmt.Errorf("copy %s: %w", f.Name, err)
		}
	}

	var missing []string
	for name := range replacements {
		if !written[name] {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	for _, name := range missing {
		fh := zip.FileHeader{Name: name, Method: zip.Deflate}
		if err := writeReplaced(zw, fh, replacements[name]); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}

	if r.Comment != "" {
		if err := zw.SetComment(r.Comment); err != nil {
			return err
		}
	}
	if err := zw.Close(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if info, err := os.Stat(path); err == nil {
		if err := os.Chmod(tmpName, info.Mode().Perm()); err != nil {
			return err
		}
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	committed = true
	return nil
}

// writeReplaced writes data under a copy of fh. The MS-DOS timestamp and
// extra fields are kept as read; the writer would otherwise add a second
// extended-timestamp field derived from Modified.
func writeReplaced(zw *zip.Writer, fh zip.FileHeader, data []byte) error {
	fh.Modified = time.Time{}
	w, err := zw.CreateHeader(&fh)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func copyRaw(zw *zip.Writer, f *zip.File) error {
	rc, err := f.OpenRaw()
	if err != nil {
		return err
	}
	fh := f.FileHeader
	w, err := zw.CreateRaw(&fh)
	if err != nil {
		return err
	}
	_, err = io.Copy(w, rc)
	return err
}
