package fixture

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
)

// Load reads the integer sequence stored at path.
func Load(path string) ([]int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fixture %s: %w", path, err)
	}
	defer f.Close()

	values, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode fixture %s: %w", path, err)
	}

	return values, nil
}

// Decode reads whitespace separated signed integers from r.
func Decode(r io.Reader) ([]int64, error) {
	scanner := bufio.NewScanner(bufio.NewReaderSize(r, 1<<16))
	scanner.Split(bufio.ScanWords)

	var values []int64

	for scanner.Scan() {
		v, err := strconv.ParseInt(scanner.Text(), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("token %d: %w", len(values)+1, err)
		}

		values = append(values, v)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}

	return values, nil
}
