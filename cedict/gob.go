package cedict

import (
	"encoding/gob"
	"fmt"
	"io"
	"os"
	"time"
)

func init() {
	gob.Register([]Entry{})
}

func EncodeGOB(w io.Writer, entries []Entry) error {
	return gob.NewEncoder(w).Encode(entries)
}

func DecodeGOB(r io.Reader) ([]Entry, error) {
	var entries []Entry
	return entries, gob.NewDecoder(r).Decode(&entries)
}

func StoreGOB(file string, entries []Entry) error {
	tmp := fmt.Sprintf("%s.%d.tmp", file, time.Now().UnixNano())
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	if err := EncodeGOB(f, entries); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}

	f.Close()
	return os.Rename(tmp, file)
}

func LoadGOB(file string) ([]Entry, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}

	entries, err := DecodeGOB(f)
	f.Close()
	return entries, err
}
