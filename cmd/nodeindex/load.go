package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bvbever/osm2pgsql/index"
	"github.com/bvbever/osm2pgsql/model"
)

// ctxCheckInterval is the number of lines between cancellation checks.
const ctxCheckInterval = 1 << 16

// ParseError reports a malformed input line.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// parseLine parses "<id> <lon> <lat>".
func parseLine(line string) (model.NodeID, model.Location, error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return 0, model.Location{}, fmt.Errorf("expected \"<id> <lon> <lat>\", got %d fields", len(fields))
	}

	id, err := strconv.ParseUint(fields[0], 10, 64)
	if err != nil {
		return 0, model.Location{}, fmt.Errorf("invalid id: %w", err)
	}
	lon, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return 0, model.Location{}, fmt.Errorf("invalid longitude: %w", err)
	}
	lat, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return 0, model.Location{}, fmt.Errorf("invalid latitude: %w", err)
	}

	loc := model.NewLocation(lon, lat)
	if !loc.Valid() {
		return 0, model.Location{}, fmt.Errorf("location %s out of range", fields[1]+","+fields[2])
	}
	return model.NodeID(id), loc, nil
}

// load reads node locations from r into m and returns the number of lines read.
// Blank lines and lines starting with '#' are skipped.
func load(ctx context.Context, r io.Reader, m index.Map[model.NodeID, model.Location]) (int, error) {
	sc := bufio.NewScanner(r)
	lines := 0
	for sc.Scan() {
		lines++
		if lines%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return lines, err
			}
		}

		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		id, loc, err := parseLine(line)
		if err != nil {
			return lines, &ParseError{Line: lines, Err: err}
		}
		m.Set(id, loc)
	}
	if err := sc.Err(); err != nil {
		return lines, fmt.Errorf("read input: %w", err)
	}
	return lines, nil
}
