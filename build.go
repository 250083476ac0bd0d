//go:build ignore

// build.go - kpicast build system
// Usage: go run build.go [-target=TARGET]
// Targets: all, build, test, clean, release

package main

import (
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

const (
	module     = "kpicast"
	binaryName = "kpicast"
	sourcePath = "./cmd/kpicast"
)

var (
	rootDir string
	distDir string

	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
)

func init() {
	cwd, err := os.Getwd()
	if err != nil {
		panic(fmt.Sprintf("Failed to get current directory: %v", err))
	}

	if _, err := os.Stat(filepath.Join(cwd, "go.mod")); os.IsNotExist(err) {
		panic(fmt.Sprintf("go.mod not found in %s; run build.go from the module root", cwd))
	}

	rootDir = cwd
	distDir = filepath.Join(rootDir, "dist")
}

func main() {
	target := flag.String("target", "all", "Build target")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	if runtime.GOOS == "windows" {
		colorReset, colorRed, colorGreen, colorYellow, colorCyan = "", "", "", "", ""
	}

	fmt.Printf("%s%s build%s\n", colorCyan, module, colorReset)
	startTime := time.Now()

	switch *target {
	case "all":
		clean(*verbose)
		runTests(*verbose)
		buildBinary(*verbose, false)
	case "build":
		buildBinary(*verbose, false)
	case "test":
		runTests(*verbose)
	case "clean":
		clean(*verbose)
	case "release":
		clean(*verbose)
		buildBinary(*verbose, true)
	default:
		showHelp()
		os.Exit(1)
	}

	printSuccess(fmt.Sprintf("Build completed in %s", time.Since(startTime).Round(time.Millisecond)))
}

func printInfo(msg string) {
	fmt.Printf("%s[INFO]%s %s\n", colorCyan, colorReset, msg)
}

func printSuccess(msg string) {
	fmt.Printf("%s[OK]%s %s\n", colorGreen, colorReset, msg)
}

func printError(msg string) {
	fmt.Printf("%s[ERROR]%s %s\n", colorRed, colorReset, msg)
}

func printWarning(msg string) {
	fmt.Printf("%s[WARN]%s %s\n", colorYellow, colorReset, msg)
}

// gitCommit returns the short HEAD hash, or "unknown" outside a git checkout
func gitCommit() string {
	out, err := exec.Command("git", "rev-parse", "--short", "HEAD").Output()
	if err != nil {
		return "unknown"
	}
	return strings.TrimSpace(string(out))
}

func buildBinary(verbose, release bool) {
	printInfo(fmt.Sprintf("Building %s...", binaryName))

	if err := os.MkdirAll(distDir, 0755); err != nil {
		printError(fmt.Sprintf("Failed to create %s: %v", distDir, err))
		os.Exit(1)
	}

	exeName := binaryName
	if runtime.GOOS == "windows" {
		exeName += ".exe"
	}
	outputPath := filepath.Join(distDir, exeName)

	ldflags := fmt.Sprintf("-X %s/pkg/contracts.BuildTime=%s -X %s/pkg/contracts.GitCommit=%s",
		module, time.Now().UTC().Format(time.RFC3339), module, gitCommit())
	if release {
		ldflags = "-s -w " + ldflags
	}

	args := []string{"build"}
	if verbose {
		args = append(args, "-v")
	}
	if release {
		args = append(args, "-trimpath")
	}
	args = append(args, "-ldflags", ldflags, "-o", outputPath, sourcePath)

	cmd := exec.Command("go", args...)
	cmd.Dir = rootDir
	cmd.Stderr = os.Stderr
	if verbose {
		fmt.Printf("Running: go %s\n", strings.Join(args, " "))
		cmd.Stdout = os.Stdout
	}

	if err := cmd.Run(); err != nil {
		printError(fmt.Sprintf("Failed to build %s: %v", binaryName, err))
		os.Exit(1)
	}

	if info, err := os.Stat(outputPath); err == nil {
		sizeMB := float64(info.Size()) / 1024 / 1024
		printSuccess(fmt.Sprintf("Built %s (%.1f MB)", exeName, sizeMB))
	}
}

func runTests(verbose bool) {
	printInfo("Running Go tests...")

	args := []string{"test", "-race"}
	if verbose {
		args = append(args, "-v")
	}
	args = append(args, "./...")

	cmd := exec.Command("go", args...)
	cmd.Dir = rootDir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		printError(fmt.Sprintf("Go tests failed: %v", err))
		os.Exit(1)
	}

	printSuccess("All tests passed")
}

func clean(verbose bool) {
	printInfo("Cleaning build artifacts...")

	for _, dir := range []string{distDir, filepath.Join(rootDir, "logs")} {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			continue
		}
		if err := os.RemoveAll(dir); err != nil {
			printWarning(fmt.Sprintf("Failed to remove %s: %v", dir, err))
			continue
		}
		if verbose {
			fmt.Printf("Removed %s\n", dir)
		}
	}
}

func showHelp() {
	fmt.Println(`Usage: go run build.go [-target=TARGET] [-v]

Targets:
  all      clean, run tests, build the server
  build    build dist/kpicast
  test     run go test -race ./...
  clean    remove dist/ and logs/
  release  stripped, trimpath build`)
}
