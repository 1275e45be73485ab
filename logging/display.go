package logging

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"rolec/common"
	"strconv"
	"strings"
	"time"

	"github.com/pterm/pterm"
)

var (
	SuccessColorFG = pterm.FgLightGreen
	SuccessStyleBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	WarnColorFG    = pterm.FgYellow
	WarnStyleBG    = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	ErrorColorFG   = pterm.FgRed
	ErrorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	InfoColorFG    = SuccessColorFG
	InfoStyleBG    = SuccessStyleBG
)

// PrintErrorMessage prints a standard Go error to the console
func PrintErrorMessage(tag string, err error) {
	ErrorStyleBG.Print(tag)
	ErrorColorFG.Println(" " + err.Error())
}

// PrintWarningMessage prints a warning message to the console
func PrintWarningMessage(tag, msg string) {
	WarnStyleBG.Print(tag)
	WarnColorFG.Println(" " + msg)
}

// PrintInfoMessage prints an informational message to the user
func PrintInfoMessage(tag, msg string) {
	InfoStyleBG.Print(tag)
	InfoColorFG.Println(" " + msg)
}

// PrintRoleTable renders the final roles of a module.  The first row is the
// header.
func PrintRoleTable(rows [][]string) {
	data := pterm.TableData(rows)

	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		PrintErrorMessage("Display Error", err)
	}
}

// -----------------------------------------------------------------------------
// This section contains all the display functions for the different kinds of
// messages that can be logged.

func (ce *ConfigError) display() {
	if ce.IsError {
		PrintErrorMessage(ce.Kind+" Error", errors.New(ce.Message))
	} else {
		PrintWarningMessage(ce.Kind+" Warning", ce.Message)
	}
}

var compileMsgStrings = map[int]string{
	LMKSyntax:    "Syntax",
	LMKName:      "Name",
	LMKDef:       "Definition",
	LMKUsage:     "Usage",
	LMKGraph:     "Type Graph",
	LMKRole:      "Role",
	LMKSignature: "Role Signature",
	LMKCoerce:    "Coercion",
}

func (cm *CompileMessage) display() {
	cm.displayBanner()
	fmt.Println(cm.Message)

	if cm.Position != nil && cm.Context != nil && cm.Context.FilePath != "" {
		cm.displayCodeSelection()
	}
}

// displayBanner displays the banner on top of all compilation messages
func (cm *CompileMessage) displayBanner() {
	fmt.Print("\n\n-- ")
	kindStr := compileMsgStrings[cm.Kind]
	kindLen := len(kindStr)
	if cm.isError() {
		ErrorStyleBG.Print(kindStr + " Error")
		kindLen += 7
	} else {
		WarnStyleBG.Print(kindStr + " Warning")
		kindLen += 9
	}

	fmt.Print(" ")

	fileName := common.ModuleFileName
	if cm.Context != nil {
		if cm.Context.FilePath != "" {
			fileName = common.ReprPath(cm.Context.ModuleRoot, cm.Context.FilePath)
		} else if cm.Context.ModuleName != "" {
			fileName = cm.Context.ModuleName + "/" + common.ModuleFileName
		}
	}

	bannerLen := pterm.GetTerminalWidth() / 2
	if bannerLen > 50 {
		bannerLen = 50
	}

	dashCount := bannerLen - len(fileName) - kindLen - 1
	if dashCount < 3 {
		dashCount = 3
	}

	fmt.Print(strings.Repeat("-", dashCount) + " ")
	InfoColorFG.Println(fileName)
}

// displayCodeSelection displays the erroneous declaration (with line numbers)
// and highlights the selected span with carets
func (cm *CompileMessage) displayCodeSelection() {
	fmt.Println()

	f, err := os.Open(cm.Context.FilePath)
	if err != nil {
		// the file was readable when it was parsed; if it vanished since then
		// the message itself is still useful
		return
	}
	defer f.Close()

	// capture the selected lines first so we can determine how much whitespace
	// to trim before printing
	sc := bufio.NewScanner(f)
	sc.Split(bufio.ScanLines)
	lines := make([]string, cm.Position.EndLn-cm.Position.StartLn+1)
	for lineNumber := 1; sc.Scan(); lineNumber++ {
		if lineNumber >= cm.Position.StartLn && lineNumber <= cm.Position.EndLn {
			lines[lineNumber-cm.Position.StartLn] = strings.ReplaceAll(sc.Text(), "\t", "    ")
		}
	}

	minWhitespace := -1
	for _, line := range lines {
		leadingWhitespace := 0
		for _, c := range line {
			if c == ' ' {
				leadingWhitespace++
			} else {
				break
			}
		}

		if minWhitespace == -1 || minWhitespace > leadingWhitespace {
			minWhitespace = leadingWhitespace
		}
	}

	maxLineNumberWidth := len(strconv.Itoa(cm.Position.EndLn)) + 1
	lineNumberFmtStr := "%-" + strconv.Itoa(maxLineNumberWidth) + "v"

	for i, line := range lines {
		InfoColorFG.Print(fmt.Sprintf(lineNumberFmtStr, i+cm.Position.StartLn))
		fmt.Print("|  ")
		fmt.Println(line[minWhitespace:])

		fmt.Print(strings.Repeat(" ", maxLineNumberWidth), "|  ")

		start := 0
		if i == 0 {
			start = cm.Position.StartCol - minWhitespace
		}

		end := len(line) - minWhitespace
		if i == len(lines)-1 {
			end = cm.Position.EndCol - minWhitespace
		}

		if start < 0 {
			start = 0
		}

		if end <= start {
			end = start + 1
		}

		fmt.Print(strings.Repeat(" ", start))
		ErrorColorFG.Println(strings.Repeat("^", end-start))
	}

	fmt.Println()
}

const fatalErrorPostlude = `
This is likely a bug in rolec.
Please open an issue with the declarations that triggered it.`

func displayFatalError(msg string) {
	fmt.Print("\n\n")
	ErrorStyleBG.Print("Fatal Error ")
	ErrorColorFG.Println(msg)
	InfoColorFG.Println(fatalErrorPostlude)
}

// -----------------------------------------------------------------------------

// displayCheckHeader displays the version and the module being checked
func displayCheckHeader(moduleName string) {
	fmt.Print("rolec ")
	InfoColorFG.Print("v" + common.RolecVersion)
	fmt.Print(" -- module: ")
	InfoColorFG.Println(moduleName)
}

// phaseSpinner stores the current phase spinner
var phaseSpinner *pterm.SpinnerPrinter
var currentPhase string
var phaseStartTime time.Time

const maxPhaseLength = len("Validating")

// displayBeginPhase displays the beginning of a checking phase
func displayBeginPhase(phase string) {
	currentPhase = phase
	phaseText := phase + "..." + strings.Repeat(" ", padding(phase))
	phaseSpinner = pterm.DefaultSpinner.WithStyle(pterm.NewStyle(InfoColorFG))

	phaseSpinner.SuccessPrinter = &pterm.PrefixPrinter{
		MessageStyle: pterm.NewStyle(pterm.FgDefault),
		Prefix: pterm.Prefix{
			Style: SuccessStyleBG,
			Text:  "Done",
		},
	}

	phaseSpinner.FailPrinter = &pterm.PrefixPrinter{
		MessageStyle: pterm.NewStyle(pterm.FgDefault),
		Prefix: pterm.Prefix{
			Style: ErrorStyleBG,
			Text:  "Fail",
		},
	}

	phaseSpinner.Start(phaseText)
	phaseStartTime = time.Now()
}

// displayEndPhase displays the end of a checking phase
func displayEndPhase(success bool) {
	if phaseSpinner != nil {
		if success {
			phaseSpinner.Success(
				currentPhase+strings.Repeat(" ", padding(currentPhase)),
				fmt.Sprintf("(%.3fs)", time.Since(phaseStartTime).Seconds()),
			)
		} else {
			phaseSpinner.Fail(currentPhase + strings.Repeat(" ", padding(currentPhase)))
		}

		phaseSpinner = nil
	}
}

func padding(phase string) int {
	if len(phase) > maxPhaseLength {
		return 2
	}

	return maxPhaseLength - len(phase) + 2
}

// displayCheckFinished displays the closing message
func displayCheckFinished(success bool, errorCount, warningCount int) {
	fmt.Print("\n")

	if success {
		SuccessColorFG.Print("All done! ")
	} else {
		ErrorColorFG.Print("Oh no! ")
	}

	fmt.Print("(")

	switch errorCount {
	case 0:
		SuccessColorFG.Print(0)
		fmt.Print(" errors, ")
	case 1:
		ErrorColorFG.Print(1)
		fmt.Print(" error, ")
	default:
		ErrorColorFG.Print(errorCount)
		fmt.Print(" errors, ")
	}

	switch warningCount {
	case 0:
		SuccessColorFG.Print(0)
		fmt.Println(" warnings)")
	case 1:
		WarnColorFG.Print(1)
		fmt.Println(" warning)")
	default:
		WarnColorFG.Print(warningCount)
		fmt.Println(" warnings)")
	}
}
