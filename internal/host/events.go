package host

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Driver scripts tag structured lines so they survive interleaving with the
// host application's own console chatter.
const (
	tagObject = "@object "
	tagResult = "@result "
	tagExport = "@export "
	tagError  = "@error "
)

type exportEvent struct {
	Path string `json:"path"`
}

type errorEvent struct {
	Message string `json:"message"`
}

// events holds everything parsed out of one driver-script run.
type events struct {
	objects []SceneObject
	results []ReduceResult
	export  string
	fatal   string
}

// parseEvents scans driver-script stdout for tagged JSON lines, ignoring
// everything else.
func parseEvents(r io.Reader) (events, error) {
	var ev events
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case strings.HasPrefix(line, tagObject):
			var obj SceneObject
			if err := json.Unmarshal([]byte(line[len(tagObject):]), &obj); err != nil {
				return ev, fmt.Errorf("host: bad object event %q: %w", line, err)
			}
			ev.objects = append(ev.objects, obj)
		case strings.HasPrefix(line, tagResult):
			var res ReduceResult
			if err := json.Unmarshal([]byte(line[len(tagResult):]), &res); err != nil {
				return ev, fmt.Errorf("host: bad result event %q: %w", line, err)
			}
			ev.results = append(ev.results, res)
		case strings.HasPrefix(line, tagExport):
			var exp exportEvent
			if err := json.Unmarshal([]byte(line[len(tagExport):]), &exp); err != nil {
				return ev, fmt.Errorf("host: bad export event %q: %w", line, err)
			}
			ev.export = exp.Path
		case strings.HasPrefix(line, tagError):
			var ee errorEvent
			if err := json.Unmarshal([]byte(line[len(tagError):]), &ee); err != nil {
				return ev, fmt.Errorf("host: bad error event %q: %w", line, err)
			}
			ev.fatal = ee.Message
		}
	}
	if err := sc.Err(); err != nil {
		return ev, fmt.Errorf("host: reading driver output: %w", err)
	}
	return ev, nil
}
