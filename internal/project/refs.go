package project

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ebayer/folio/internal/config"
	"github.com/ebayer/folio/internal/reference"
)

// maxJSONLLineCapacity is the maximum buffer size for reading JSONL lines
// (1MB per line).
const maxJSONLLineCapacity = 1024 * 1024

// LoadRefs reads refs.jsonl into an ordered collection. Line order is the
// collection's insertion order, which numeric styles number against.
func LoadRefs(root string) (*reference.Collection, error) {
	coll := reference.NewCollection()

	f, err := os.Open(config.RefsPath(root))
	if err != nil {
		if os.IsNotExist(err) {
			return coll, nil
		}
		return nil, fmt.Errorf("opening refs file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	buf := make([]byte, maxJSONLLineCapacity)
	scanner.Buffer(buf, maxJSONLLineCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var ref reference.Reference
		if err := json.Unmarshal(line, &ref); err != nil {
			return nil, fmt.Errorf("parsing line %d: %w", lineNum, err)
		}
		coll.Merge(ref)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading refs file: %w", err)
	}
	return coll, nil
}

// SaveRefs rewrites refs.jsonl from a collection, preserving insertion
// order.
func SaveRefs(root string, coll *reference.Collection) error {
	f, err := os.Create(config.RefsPath(root))
	if err != nil {
		return fmt.Errorf("creating refs file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, e := range coll.Entries() {
		data, err := json.Marshal(e.Reference)
		if err != nil {
			return fmt.Errorf("encoding reference %s: %w", e.Key, err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("writing reference: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing refs file: %w", err)
	}
	return nil
}

// AppendRef adds one reference to the end of refs.jsonl.
func AppendRef(root string, ref reference.Reference) error {
	f, err := os.OpenFile(config.RefsPath(root), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening refs file for append: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(ref)
	if err != nil {
		return fmt.Errorf("encoding reference: %w", err)
	}
	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing reference: %w", err)
	}
	return nil
}
