package elsa

import (
	"os"

	"cosmossdk.io/log"
)

// ReadWholeFile reads path into memory in a single allocation. It exists so
// callers of Walk/Scanf/Setf — all of which operate on an in-memory byte
// slice — never need to reach for encoding/json's streaming Decoder just to
// get bytes off disk.
func ReadWholeFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// PrintfToFile runs Printf against a file opened at path (truncating any
// existing content) and returns the number of bytes written. File access
// lives only in this file's helpers — Setf and Prettify consume a Sink and
// never touch the filesystem directly.
func PrintfToFile(path, format string, args ...interface{}) (int, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	sink := NewWriterSink(f)
	n, err := Printf(sink, format, args...)
	if err != nil {
		return n, err
	}
	return n, f.Sync()
}

// PrettifyFile re-emits the document at path, indented, to a new file at
// outPath. logger receives a debug line naming both paths and the byte
// counts involved — the same structured-logging idiom the rest of this
// module's host applications use for file-boundary operations, kept out of
// the core Walk/Printf/Setf/Scanf paths entirely.
func PrettifyFile(logger log.Logger, path, outPath, indent string) error {
	src, err := ReadWholeFile(path)
	if err != nil {
		logger.Error("prettify: read failed", "path", path, "err", err)
		return err
	}

	out, err := os.Create(outPath)
	if err != nil {
		logger.Error("prettify: create failed", "path", outPath, "err", err)
		return err
	}
	defer out.Close()

	sink := NewWriterSink(out)
	if err := Prettify(src, sink, indent); err != nil {
		logger.Error("prettify: walk failed", "path", path, "err", err)
		return err
	}

	logger.Debug("prettify: wrote file", "in", path, "out", outPath, "in_bytes", len(src), "out_bytes", sink.Written())
	return nil
}
