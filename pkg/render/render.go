// Package render drives the external OpenSCAD renderer over the .scad
// files the asset writer produces. Rendering is pure subprocess dispatch;
// the renderer owns all geometry evaluation.
package render

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/chazu/burl/pkg/asset"
)

// DefaultProgram is the renderer executable looked up on PATH.
const DefaultProgram = "openscad"

// Job is one renderer invocation: a scad input to one output artifact.
type Job struct {
	Input  string
	Output string
	Image  *asset.Image
}

// JobsFor expands one refined asset into renderer jobs: one per output
// suffix and one per still image.
func JobsFor(a asset.Asset, scadPath, renderDir string) []Job {
	suffixes := a.Suffixes
	if len(suffixes) == 0 {
		suffixes = []string{".stl"}
	}
	jobs := make([]Job, 0, len(suffixes)+len(a.Images))
	for _, suffix := range suffixes {
		if !strings.HasPrefix(suffix, ".") {
			suffix = "." + suffix
		}
		jobs = append(jobs, Job{
			Input:  scadPath,
			Output: filepath.Join(renderDir, a.Name+suffix),
		})
	}
	for i := range a.Images {
		img := a.Images[i]
		jobs = append(jobs, Job{
			Input:  scadPath,
			Output: filepath.Join(renderDir, img.Path),
			Image:  &img,
		})
	}
	return jobs
}

// Compose builds a complete, shell-ready renderer command line.
func Compose(program string, job Job) []string {
	argv := []string{program}
	if job.Output != "" {
		argv = append(argv, "-o", job.Output)
	}
	if img := job.Image; img != nil {
		if img.Camera != nil {
			argv = append(argv, "--camera", cameraArg(img.Camera))
		}
		if img.Size != [2]int{} {
			argv = append(argv, "--imgsize",
				strconv.Itoa(img.Size[0])+","+strconv.Itoa(img.Size[1]))
		}
		if img.ColorScheme != "" {
			argv = append(argv, "--colorscheme", img.ColorScheme)
		}
	}
	return append(argv, job.Input)
}

func cameraArg(c asset.Camera) string {
	switch cam := c.(type) {
	case asset.Gimbal:
		return floats(
			cam.Translation[0], cam.Translation[1], cam.Translation[2],
			cam.Rotation[0], cam.Rotation[1], cam.Rotation[2],
			cam.Distance)
	case asset.Vector:
		return floats(
			cam.Eye[0], cam.Eye[1], cam.Eye[2],
			cam.Center[0], cam.Center[1], cam.Center[2])
	}
	return ""
}

func floats(fs ...float64) string {
	parts := make([]string, len(fs))
	for i, f := range fs {
		parts[i] = strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strings.Join(parts, ",")
}

// RenderAll runs all jobs through the renderer, bounded by host CPU
// count. The first failure cancels the remaining jobs.
func RenderAll(ctx context.Context, program string, jobs []Job) error {
	if program == "" {
		program = DefaultProgram
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for _, job := range jobs {
		job := job
		g.Go(func() error {
			argv := Compose(program, job)
			cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
			out, err := cmd.CombinedOutput()
			if err != nil {
				return fmt.Errorf("rendering %s: %w\n%s", job.Output, err, out)
			}
			return nil
		})
	}
	return g.Wait()
}
