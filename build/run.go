// Package build drives document builder from recipe files.
package build

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"sort"
	"strings"
	"time"

	"github.com/maruel/natural"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"docxgen/docx"
	"docxgen/recipe"
	"docxgen/state"
)

const docxExt = ".docx"

// Run is the action of build command.
func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Named("build")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no recipe has been specified")
	}
	if src, err = filepath.Abs(src); err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	env.Overwrite = cmd.Bool("overwrite")
	if cmd.Bool("strict") {
		env.Cfg.Document.Strict = true
	}

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, src, dst, log)
}

// process builds single recipe or every recipe found in directory.
func process(ctx context.Context, src, dst string, log *zap.Logger) error {
	fi, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("recipe source was not found: %w", err)
	}

	recipes := []string{src}
	if fi.IsDir() {
		if recipes, err = listRecipes(src); err != nil {
			return err
		}
		if len(recipes) == 0 {
			log.Warn("Nothing to process", zap.String("dir", src))
			return nil
		}
	} else if !fi.Mode().IsRegular() {
		return fmt.Errorf("unexpected path mode for (%s)", src)
	}

	explicit := strings.EqualFold(filepath.Ext(dst), docxExt)
	if explicit && len(recipes) > 1 {
		return fmt.Errorf("destination %s names single file, but %d recipes found", dst, len(recipes))
	}

	failed := 0
	for i, path := range recipes {
		if err := ctx.Err(); err != nil {
			return err
		}
		index := 0
		if len(recipes) > 1 {
			index = i + 1
		}
		if err := processRecipe(ctx, path, index, dst, explicit, log); err != nil {
			log.Error("Unable to build document", zap.String("recipe", path), zap.Error(err))
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d recipe(s) failed", failed, len(recipes))
	}
	return nil
}

// listRecipes returns YAML files in directory in natural order.
func listRecipes(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("unable to read recipe directory: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".yaml", ".yml":
			names = append(names, e.Name())
		}
	}
	sort.Sort(natural.StringSlice(names))

	paths := make([]string, 0, len(names))
	for _, n := range names {
		paths = append(paths, filepath.Join(dir, n))
	}
	return paths, nil
}

// processRecipe produces one document. When explicit is set dst is the
// output file, otherwise it is directory and name comes from configuration.
func processRecipe(ctx context.Context, path string, index int, dst string, explicit bool, log *zap.Logger) (rerr error) {
	env := state.EnvFromContext(ctx)

	var outputName string

	log.Info("Build starting", zap.String("recipe", path))
	defer func(start time.Time) {
		if r := recover(); r != nil {
			log.Error("Build ended with panic",
				zap.Any("panic", r), zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName), zap.ByteString("stack", debug.Stack()))
			rerr = fmt.Errorf("build panic: %v", r)
		} else if rerr == nil {
			log.Info("Build completed", zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName))
		}
	}(time.Now())

	r, err := recipe.Load(path)
	if err != nil {
		return err
	}
	env.Rpt.Store(fmt.Sprintf("recipe-%d-%s", index, filepath.Base(path)), path)

	cfg := &env.Cfg.Document
	b := docx.New(cfg, log, docx.WithTitle(r.Title), docx.WithCreator(r.Author))
	if err := recipe.Apply(b, r, cfg.Strict, log); err != nil {
		if cfg.Strict {
			return fmt.Errorf("unable to apply recipe: %w", err)
		}
		log.Warn("Some recipe steps failed, document will be incomplete", zap.String("recipe", path), zap.Error(err))
	}

	if explicit {
		outputName = dst
	} else {
		outputName = buildOutputPath(r, index, dst, env)
	}

	if _, err := os.Stat(outputName); err == nil {
		if !env.Overwrite {
			return fmt.Errorf("output file already exists: %s", outputName)
		}
		log.Warn("Overwriting existing file", zap.String("file", outputName))
	} else if !os.IsNotExist(err) {
		return err
	}

	if err := b.Generate(ctx, outputName); err != nil {
		return fmt.Errorf("unable to generate document: %w", err)
	}

	if err := env.Rpt.StoreCopy(fmt.Sprintf("result-%s%s", b.ID(), docxExt), outputName); err != nil {
		log.Warn("Unable to store result in debug report", zap.Error(err))
	}
	return nil
}
