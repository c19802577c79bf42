// Command burl evaluates Lisp CAD scripts to OpenSCAD code and
// optionally drives the OpenSCAD renderer over the result.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/chazu/burl/pkg/asset"
	"github.com/chazu/burl/pkg/cache"
	"github.com/chazu/burl/pkg/config"
	"github.com/chazu/burl/pkg/engine"
	"github.com/chazu/burl/pkg/render"
)

// version is overridden at build time via -ldflags.
var version = "dev"

const usage = `burl evaluates Lisp CAD scripts to OpenSCAD code.

Usage:
  burl run [-render] [script.lisp]   evaluate a script (default: most recent)
  burl watch <script.lisp>           re-run a script whenever it changes
  burl new <name>                    scaffold a new project directory
  burl version                       print the version
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	var err error
	switch os.Args[1] {
	case "run":
		err = cmdRun(os.Args[2:])
	case "watch":
		err = cmdWatch(os.Args[2:])
	case "new":
		err = cmdNew(os.Args[2:])
	case "version":
		fmt.Println("burl", version)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "burl:", err)
		os.Exit(1)
	}
}

func cmdRun(args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	doRender := fs.Bool("render", false, "run the renderer over the output")
	if err := fs.Parse(args); err != nil {
		return err
	}

	script := fs.Arg(0)
	if script == "" {
		entry, err := cache.MostRecent()
		if err != nil {
			return fmt.Errorf("no script given and %w", err)
		}
		script = entry.Script
	}
	return runScript(script, *doRender)
}

// runScript evaluates one script and serializes its assets.
func runScript(script string, doRender bool) error {
	source, err := os.ReadFile(script)
	if err != nil {
		return err
	}
	cfg, err := config.Load(filepath.Dir(script))
	if err != nil {
		return err
	}

	assets, evalErrs, err := engine.NewEngine().Evaluate(string(source))
	if err != nil {
		return err
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			fmt.Fprintf(os.Stderr, "%s: %s\n", script, e.Error())
		}
		return fmt.Errorf("%d error(s) in %s", len(evalErrs), script)
	}

	opts := asset.DefaultOptions()
	raws := make([]any, len(assets))
	for i, a := range assets {
		raws[i] = a
	}
	if err := asset.WriteFiles(cfg.OutputDir, opts, raws...); err != nil {
		return err
	}
	if err := cache.Record(script); err != nil {
		return err
	}

	if !doRender {
		return nil
	}
	var jobs []render.Job
	for _, a := range assets {
		refined, err := asset.Refine(a, opts)
		if err != nil {
			return err
		}
		for _, r := range refined {
			scadPath := filepath.Join(cfg.OutputDir, r.Name+".scad")
			jobs = append(jobs, render.JobsFor(r, scadPath, cfg.RenderDir)...)
		}
	}
	if err := os.MkdirAll(cfg.RenderDir, 0o755); err != nil {
		return err
	}
	return render.RenderAll(context.Background(), cfg.Renderer, jobs)
}

func cmdWatch(args []string) error {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	doRender := fs.Bool("render", false, "run the renderer after each change")
	if err := fs.Parse(args); err != nil {
		return err
	}
	script := fs.Arg(0)
	if script == "" {
		return fmt.Errorf("watch requires a script argument")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the directory rather than the file; editors that write via
	// rename would otherwise drop the watch.
	dir := filepath.Dir(script)
	if err := watcher.Add(dir); err != nil {
		return err
	}

	report := func() {
		if err := runScript(script, *doRender); err != nil {
			fmt.Fprintln(os.Stderr, "burl:", err)
		} else {
			fmt.Println("wrote output for", script)
		}
	}
	report()

	target, _ := filepath.Abs(script)
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}
			changed, _ := filepath.Abs(event.Name)
			if changed == target || filepath.Ext(event.Name) == ".lisp" {
				report()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintln(os.Stderr, "burl: watch:", err)
		}
	}
}

const templateScript = `; %s: a burl CAD script.
(write
  (asset "%s"
    (difference
      (cube [40 20 10] :center true)
      (cylinder :r 3 :h 20 :center true))))
`

const gitignore = "output/\n"

func cmdNew(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("new requires a project name")
	}
	name := args[0]
	if strings.ContainsAny(name, "/\\") {
		return fmt.Errorf("project name %q must not contain path separators", name)
	}
	if err := os.Mkdir(name, 0o755); err != nil {
		return err
	}
	script := fmt.Sprintf(templateScript, name, name)
	if err := os.WriteFile(filepath.Join(name, "main.lisp"), []byte(script), 0o644); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(name, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return err
	}
	// Initialize version control when git is available.
	if _, err := exec.LookPath("git"); err == nil {
		cmd := exec.Command("git", "init", "--quiet")
		cmd.Dir = name
		if err := cmd.Run(); err != nil {
			return fmt.Errorf("git init: %w", err)
		}
	}
	fmt.Println("created", name)
	return nil
}
