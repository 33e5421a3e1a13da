package main

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/samber/lo"
	"github.com/tidwall/gjson"
)

const (
	defaultExecutablePath         = "../../bin/schedulease"
	defaultFixturesDirectory      = "../../test/fixtures/"
	MB                    float32 = 1024
)

type ResultType string

const (
	succeeded ResultType = "succeeded"
	failed    ResultType = "failed"
)

// FixtureSet is a directory of saved search responses, one <COURSE>.json per requested course.
type FixtureSet struct {
	Name      string
	Directory string
	Courses   []string
}

type BenchmarkResult struct {
	Fixture             string     `csv:"Fixture"`
	Courses             string     `csv:"Courses"`
	Run                 int        `csv:"Run"`
	TotalCombinations   int64      `csv:"Total Combinations"`
	ValidSchedules      int64      `csv:"Valid Schedules"`
	ConflictingSchedule int64      `csv:"Conflicting Combinations"`
	Duration            int64      `csv:"Duration(ms)"`
	Memory              float32    `csv:"Memory(MB)"`
	CpuPercentage       int64      `csv:"CPU(%)"`
	Result              ResultType `csv:"Result"`
}

func main() {
	executablePtr := flag.String("bin", defaultExecutablePath, "Path to the schedulease executable")
	directoryPtr := flag.String("dir", defaultFixturesDirectory, "Directory holding one sub-directory per fixture set")
	runsPtr := flag.Int("runs", 3, "Runs per fixture set")
	outPtr := flag.String("out", "benchmark_results.csv", "CSV file the results are written to")
	flag.Parse()

	fixtures, err := getFixtures(*directoryPtr)
	if err != nil {
		log.Fatalf("cannot read fixtures: %v", err)
	}

	results := make([]*BenchmarkResult, 0, len(fixtures)*(*runsPtr))
	for _, fixture := range fixtures {
		for run := range *runsPtr {
			fmt.Printf("Benchmarking fixture \"%v\" (%v), run %d\n", fixture.Name, strings.Join(fixture.Courses, " "), run+1)
			result := measure(*executablePtr, fixture)
			result.Run = run + 1
			results = append(results, result)
		}
	}

	toCsv(results, *outPtr)
}

func getFixtures(directory string) ([]FixtureSet, error) {
	entries, err := os.ReadDir(directory)
	if err != nil {
		return nil, err
	}

	fixtures := make([]FixtureSet, 0)
	for _, entry := range lo.Filter(entries, func(entry os.DirEntry, _ int) bool { return entry.IsDir() }) {
		fixtureDirectory := filepath.Join(directory, entry.Name())
		files, err := os.ReadDir(fixtureDirectory)
		if err != nil {
			return nil, err
		}

		courses := lo.FilterMap(files, func(file os.DirEntry, _ int) (string, bool) {
			course, ok := strings.CutSuffix(file.Name(), ".json")
			return course, ok && !file.IsDir()
		})
		if len(courses) == 0 {
			continue
		}
		slices.Sort(courses)

		fixtures = append(fixtures, FixtureSet{
			Name:      entry.Name(),
			Directory: fixtureDirectory,
			Courses:   courses,
		})
	}

	return fixtures, nil
}

func measure(executablePath string, fixture FixtureSet) *BenchmarkResult {
	args := append([]string{"-v", executablePath, "generate", "--json", "--fixtures", fixture.Directory}, fixture.Courses...)
	cmd := exec.Command("/usr/bin/time", args...)

	var stdOut bytes.Buffer
	cmd.Stdout = &stdOut
	var stdErr bytes.Buffer
	cmd.Stderr = &stdErr

	cmd.Run()
	if cmd.ProcessState == nil || (cmd.ProcessState.ExitCode() != 0 && cmd.ProcessState.ExitCode() != 1) {
		log.Fatalf("an error occurred during the execution of \"schedulease\" at fixture \"%v\": %v\n", fixture.Name, stdErr.String())
	}

	output := stdOut.Bytes()
	result := &BenchmarkResult{
		Fixture:             fixture.Name,
		Courses:             strings.Join(fixture.Courses, " "),
		TotalCombinations:   gjson.GetBytes(output, "total_possible_combinations").Int(),
		ValidSchedules:      gjson.GetBytes(output, "valid_schedules_count").Int(),
		ConflictingSchedule: gjson.GetBytes(output, "conflicting_combinations_count").Int(),
		Result:              lo.Ternary(gjson.GetBytes(output, "success").Bool(), succeeded, failed),
	}

	splits := strings.Split(stdErr.String(), "\n")
	getLine := func(substr string) string {
		line, ok := lo.Find(splits, func(line string) bool {
			return strings.Contains(strings.ToLower(line), substr)
		})
		if !ok {
			log.Fatalf("Substring \"%v\" could not be found", substr)
		}
		return line
	}

	result.Duration = parseDurationLine(getLine("wall clock"))
	result.Memory = parseMemoryLine(getLine("maximum resident set size"))
	result.CpuPercentage = parseCpuPercentageLine(getLine("percent of cpu"))

	return result
}

func toCsv(results []*BenchmarkResult, path string) {
	file, err := os.Create(path)
	if err != nil {
		log.Panicf("cannot create CSV file: %v", err)
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&results, file); err != nil {
		log.Panicf("cannot write CSV records: %v", err)
	}
}

func parseDurationLine(line string) int64 {
	durationStr := strings.Split(line, "(h:mm:ss or m:ss):")[1][1:]
	return parseDuration(durationStr)
}

func parseDuration(durationStr string) int64 {
	parts := strings.Split(durationStr, ":")
	secondsStr := parts[len(parts)-1]
	secondsParts := strings.Split(secondsStr, ".")

	var duration int64
	if len(parts) == 3 { // h:mm:ss
		hours := lo.Must(strconv.Atoi(parts[0]))
		minutes := lo.Must(strconv.Atoi(parts[1]))
		seconds := lo.Must(strconv.Atoi(secondsParts[0]))
		hundredthOfSeconds := lo.Must(strconv.Atoi(secondsParts[1]))
		duration = int64(hours*3600+minutes*60+seconds)*1000 + int64(hundredthOfSeconds*10)
	} else if len(parts) == 2 { // m:ss
		minutes := lo.Must(strconv.Atoi(parts[0]))
		seconds := lo.Must(strconv.Atoi(secondsParts[0]))
		hundredthOfSeconds := lo.Must(strconv.Atoi(secondsParts[1]))
		duration = int64(minutes*60+seconds)*1000 + int64(hundredthOfSeconds*10)
	} else {
		log.Fatalf("unexpected duration format: %v", durationStr)
	}
	return duration
}

func parseMemoryLine(line string) float32 {
	memoryStr := strings.Split(line, ":")[1][1:]
	return float32(lo.Must(strconv.ParseFloat(memoryStr, 32))) / MB
}

func parseCpuPercentageLine(line string) int64 {
	percentageStr := strings.Split(line, ":")[1][1:]
	percentageStr = percentageStr[:len(percentageStr)-1]
	return int64(lo.Must(strconv.Atoi(percentageStr)))
}
