package host

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

//go:embed probe.py
var probeScript []byte

//go:embed apply.py
var applyScript []byte

// Blender drives a headless Blender process as the mesh host. Each call is
// one full subprocess session: Blender imports the scene fresh, does its
// work, and exits. Scene state never lives in this process.
type Blender struct {
	// Binary is the Blender executable. Defaults to "blender" on PATH.
	Binary string
	// Timeout bounds each subprocess session. Zero means no bound.
	Timeout time.Duration
}

// plan is the job description handed to apply.py.
type plan struct {
	Decimate DecimateOptions   `json:"decimate"`
	Export   ExportOptions     `json:"export"`
	Output   string            `json:"output"`
	Objects  []DecimateRequest `json:"objects"`
}

func (b *Blender) binary() string {
	if b.Binary != "" {
		return b.Binary
	}
	return "blender"
}

// ListObjects imports the scene in a probe session and returns every object.
func (b *Blender) ListObjects(ctx context.Context, scenePath string) ([]SceneObject, error) {
	ev, err := b.runScript(ctx, probeScript, "probe", scenePath)
	if err != nil {
		return nil, err
	}
	return ev.objects, nil
}

// Reduce runs an apply session: import, bake one decimation per request,
// export the whole scene to outPath. Per-object failures come back as
// failed results; only session-level problems are returned as an error.
func (b *Blender) Reduce(ctx context.Context, scenePath string, reqs []DecimateRequest,
	dec DecimateOptions, exp ExportOptions, outPath string) ([]ReduceResult, error) {

	planData, err := json.Marshal(plan{
		Decimate: dec,
		Export:   exp,
		Output:   outPath,
		Objects:  reqs,
	})
	if err != nil {
		return nil, fmt.Errorf("host: marshal plan: %w", err)
	}

	planFile, err := writeTemp("avatar-plan-*.json", planData)
	if err != nil {
		return nil, err
	}
	defer os.Remove(planFile)

	ev, err := b.runScript(ctx, applyScript, "apply", scenePath, planFile)
	if err != nil {
		return nil, err
	}
	if ev.export == "" {
		return ev.results, fmt.Errorf("host: apply session ended without an export")
	}
	return ev.results, nil
}

// runScript writes the driver script to a temp file and runs one Blender
// session with the given arguments after the "--" separator.
func (b *Blender) runScript(ctx context.Context, script []byte, name string, args ...string) (events, error) {
	scriptFile, err := writeTemp("avatar-"+name+"-*.py", script)
	if err != nil {
		return events{}, err
	}
	defer os.Remove(scriptFile)

	if b.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.Timeout)
		defer cancel()
	}

	cmdArgs := []string{"--background", "--factory-startup", "--python", scriptFile, "--"}
	cmdArgs = append(cmdArgs, args...)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, b.binary(), cmdArgs...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()

	// Parse whatever we got even on failure; a fatal event explains more
	// than an exit status.
	ev, parseErr := parseEvents(bytes.NewReader(stdout.Bytes()))
	if parseErr != nil {
		return ev, parseErr
	}
	if ev.fatal != "" {
		return ev, fmt.Errorf("host: %s session: %s", name, ev.fatal)
	}
	if runErr != nil {
		if ctx.Err() != nil {
			return ev, fmt.Errorf("host: %s session: %w", name, ctx.Err())
		}
		return ev, fmt.Errorf("host: %s session: %w (stderr: %s)", name, runErr, tail(stderr.String(), 400))
	}
	return ev, nil
}

func writeTemp(pattern string, data []byte) (string, error) {
	f, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", fmt.Errorf("host: create temp file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("host: write %s: %w", filepath.Base(f.Name()), err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("host: close %s: %w", filepath.Base(f.Name()), err)
	}
	return f.Name(), nil
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n:]
}
