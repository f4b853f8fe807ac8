package archive

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// Create packs the regular files directly inside srcDir whose names satisfy
// keep into a new archive at dstPath. Compression follows the dstPath suffix.
// Entries are written in name order under baseDir with a fixed timestamp so
// that packing the same input twice yields identical archives.
func Create(srcDir, dstPath, baseDir string, keep func(name string) bool) (int, error) {
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return 0, fmt.Errorf("read source directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if keep != nil && !keep(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	if err := os.MkdirAll(filepath.Dir(dstPath), 0755); err != nil {
		return 0, fmt.Errorf("failed to create parent directory: %w", err)
	}

	outFile, err := os.Create(dstPath)
	if err != nil {
		return 0, fmt.Errorf("failed to create archive file: %w", err)
	}
	defer outFile.Close()

	compressor, err := newCompressor(outFile, dstPath)
	if err != nil {
		return 0, err
	}

	tw := tar.NewWriter(compressor)
	epoch := time.Unix(0, 0).UTC()

	for _, name := range names {
		if err := addFile(tw, filepath.Join(srcDir, name), baseDir+"/"+name, epoch); err != nil {
			compressor.Close()
			return 0, fmt.Errorf("failed to add %s: %w", name, err)
		}
	}

	if err := tw.Close(); err != nil {
		compressor.Close()
		return 0, fmt.Errorf("failed to finish tar stream: %w", err)
	}
	if err := compressor.Close(); err != nil {
		return 0, fmt.Errorf("failed to finish compression: %w", err)
	}
	return len(names), nil
}

func newCompressor(w io.Writer, dstPath string) (io.WriteCloser, error) {
	lower := strings.ToLower(dstPath)
	switch {
	case strings.HasSuffix(lower, ".tar.xz"), strings.HasSuffix(lower, ".txz"):
		xw, err := xz.NewWriter(w)
		if err != nil {
			return nil, fmt.Errorf("xz writer: %w", err)
		}
		return xw, nil
	case strings.HasSuffix(lower, ".tar.gz"), strings.HasSuffix(lower, ".tgz"):
		return gzip.NewWriter(w), nil
	case strings.HasSuffix(lower, ".tar.zst"):
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return nil, fmt.Errorf("zstd writer: %w", err)
		}
		return zw, nil
	}
	return nil, fmt.Errorf("unsupported archive format: %s", dstPath)
}

func addFile(tw *tar.Writer, path, name string, modTime time.Time) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return err
	}

	header := &tar.Header{
		Name:     name,
		Mode:     0644,
		Size:     info.Size(),
		ModTime:  modTime,
		Typeflag: tar.TypeReg,
	}
	if err := tw.WriteHeader(header); err != nil {
		return err
	}
	_, err = io.Copy(tw, file)
	return err
}
