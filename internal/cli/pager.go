package cli

import (
	"context"
	"io"
	"os"
	"os/exec"

	"github.com/mithrel/finreply/internal/present"
)

const defaultPager = "less -FRSX"

// withPager pipes pretty output through $PAGER when writing to a terminal.
func withPager(ctx context.Context, out, errOut io.Writer, mode present.Mode, write func(io.Writer) error) error {
	outFile, ok := out.(*os.File)
	if mode != present.ModePretty || !ok || !isTerminal(outFile) {
		return write(out)
	}
	pager := os.Getenv("PAGER")
	if pager == "" {
		pager = defaultPager
	}
	cmd := exec.CommandContext(ctx, "sh", "-c", pager)
	cmd.Stdout = outFile
	if errFile, ok := errOut.(*os.File); ok {
		cmd.Stderr = errFile
	} else {
		cmd.Stderr = os.Stderr
	}
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return write(out)
	}
	if err := cmd.Start(); err != nil {
		return write(out)
	}
	writeErr := write(stdin)
	_ = stdin.Close()
	waitErr := cmd.Wait()
	if writeErr != nil {
		return writeErr
	}
	return waitErr
}
