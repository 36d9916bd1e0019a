package htmlreport

import (
	"fmt"
	"math"
	"path"
	"strings"

	"github.com/IgorBayerl/ReportGenerator/go_v8_converter/internal/model"
	"github.com/IgorBayerl/ReportGenerator/go_v8_converter/internal/utils"
)

// LineVisitStatus is the coverage state of a source line.
type LineVisitStatus int

const (
	NotCoverable LineVisitStatus = iota
	Covered
	NotCovered
	PartiallyCovered
)

const maxFilenameLengthBase = 95

// lineCoverage is what the coverage data says about one source line.
type lineCoverage struct {
	// hits is the lowest count of the statements starting on the line, -1 without statements.
	hits            int
	coveredBranches int
	totalBranches   int
}

// collectLineCoverage indexes the statements and branch arms of fc by starting line.
func collectLineCoverage(fc *model.FileCoverage) map[int]*lineCoverage {
	lines := make(map[int]*lineCoverage)
	at := func(n int) *lineCoverage {
		lc, ok := lines[n]
		if !ok {
			lc = &lineCoverage{hits: -1}
			lines[n] = lc
		}
		return lc
	}

	for id, loc := range fc.StatementMap {
		lc := at(loc.Start.Line)
		if count := fc.S[id]; lc.hits < 0 || count < lc.hits {
			lc.hits = count
		}
	}
	for id, branch := range fc.BranchMap {
		counts := fc.B[id]
		for i, arm := range branch.Locations {
			if i >= len(counts) {
				break
			}
			lc := at(arm.Start.Line)
			lc.totalBranches++
			if counts[i] > 0 {
				lc.coveredBranches++
			}
		}
	}
	return lines
}

func determineLineVisitStatus(hits int, isBranchPoint bool, coveredBranches int, totalBranches int) LineVisitStatus {
	if hits < 0 && !isBranchPoint {
		return NotCoverable
	}
	if isBranchPoint {
		if totalBranches == 0 {
			return NotCoverable
		}
		if coveredBranches == totalBranches {
			return Covered
		}
		if coveredBranches > 0 {
			return PartiallyCovered
		}
		return NotCovered
	}
	if hits > 0 {
		return Covered
	}
	return NotCovered
}

func lineVisitStatusToString(status LineVisitStatus) string {
	switch status {
	case Covered:
		return "green"
	case NotCovered:
		return "red"
	case PartiallyCovered:
		return "orange"
	default:
		return "gray"
	}
}

// coverageCell formats a counter for the summary tables.
func coverageCell(c model.Counter) CoverageCellViewModel {
	cell := CoverageCellViewModel{Covered: c.Covered, Total: c.Total, Percent: "n/a", Level: "none"}
	p := c.Percent()
	if math.IsNaN(p) {
		return cell
	}
	cell.Percent = fmt.Sprintf("%.1f%%", p)
	cell.BarValue = int(math.Floor(p))
	switch {
	case p >= 80:
		cell.Level = "high"
	case p >= 50:
		cell.Level = "medium"
	default:
		cell.Level = "low"
	}
	return cell
}

func fileRow(filePath, reportPath string, s model.CoverageSummary) FileRowViewModel {
	return FileRowViewModel{
		Path:       filePath,
		ReportPath: reportPath,
		Statements: coverageCell(s.Statements),
		Branches:   coverageCell(s.Branches),
		Functions:  coverageCell(s.Functions),
		Lines:      coverageCell(s.Lines),
	}
}

// generateUniqueFilename creates a sanitized and unique HTML filename for a source file. The
// last two path segments are kept so that files with the same name in different directories
// stay recognizable. The existingFilenames map is modified by this function.
func generateUniqueFilename(filePath string, existingFilenames map[string]struct{}) string {
	slashed := strings.ReplaceAll(filePath, `\`, "/")
	base := path.Base(slashed)
	if dir := path.Base(path.Dir(slashed)); dir != "." && dir != "/" {
		base = dir + "_" + base
	}

	sanitizedName := utils.ReplaceInvalidPathChars(base)
	if len(sanitizedName) > maxFilenameLengthBase {
		sanitizedName = sanitizedName[:50] + sanitizedName[len(sanitizedName)-(maxFilenameLengthBase-50):]
	}

	fileName := sanitizedName + ".html"
	counter := 1
	normalizedFileNameToCheck := strings.ToLower(fileName)

	_, exists := existingFilenames[normalizedFileNameToCheck]
	for exists {
		counter++
		fileName = fmt.Sprintf("%s%d.html", sanitizedName, counter)
		normalizedFileNameToCheck = strings.ToLower(fileName)
		_, exists = existingFilenames[normalizedFileNameToCheck]
	}

	existingFilenames[normalizedFileNameToCheck] = struct{}{}
	return fileName
}
