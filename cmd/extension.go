package cmd

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"syscall"
)

const (
	EnvPortfolioFile  = "CFOL_PORTFOLIO_FILE"
	EnvGoalsFile      = "CFOL_GOALS_FILE"
	EnvConditionsFile = "CFOL_CONDITIONS_FILE"
	EnvQuote          = "CFOL_QUOTE"
	EnvAPIKey         = "CFOL_API_KEY"
)

// RunExtension attempts to find and execute an external cfol-<subcommand>
// binary. It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found.
func RunExtension(subcommand string, args []string) (bool, int) {
	externalCmdName := "cfol-" + subcommand

	lp, err := exec.LookPath(externalCmdName)
	if err != nil {
		log.Printf("External command %q not found in PATH: %v", externalCmdName, err)
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	// Pass global flags as environment variables
	cmd.Env = os.Environ()
	cmd.Env = append(cmd.Env, EnvPortfolioFile+"="+*portfolioFile)
	cmd.Env = append(cmd.Env, EnvGoalsFile+"="+*goalsFile)
	cmd.Env = append(cmd.Env, EnvConditionsFile+"="+*conditionsFile)
	cmd.Env = append(cmd.Env, EnvQuote+"="+*quote)

	if err := cmd.Run(); err != nil {
		if exitError, ok := err.(*exec.ExitError); ok {
			if status, ok := exitError.Sys().(syscall.WaitStatus); ok {
				return true, status.ExitStatus()
			}
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", externalCmdName, err)
		return true, 1
	}

	return true, 0
}
