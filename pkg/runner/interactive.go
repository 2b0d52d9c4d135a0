package runner

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"

	"golang.org/x/sync/errgroup"
)

// Interactive spawns the problem and an interactor concurrently and wires
// them into a live conversation: the interactor first receives the
// generated input, then each program's output is forwarded to the other's
// input until both sides close. The run is Ok only if both processes exit
// successfully.
type Interactive struct {
	Problem    string
	Interactor string
}

func (r Interactive) Run(input []byte) (Status, error) {
	problem := exec.Command(r.Problem)
	problemIn, err := problem.StdinPipe()
	if err != nil {
		return StatusFailed, fmt.Errorf("failed to pipe %s: %w", r.Problem, err)
	}
	problemOut, err := problem.StdoutPipe()
	if err != nil {
		return StatusFailed, fmt.Errorf("failed to pipe %s: %w", r.Problem, err)
	}

	interactor := exec.Command(r.Interactor)
	interactorIn, err := interactor.StdinPipe()
	if err != nil {
		return StatusFailed, fmt.Errorf("failed to pipe %s: %w", r.Interactor, err)
	}
	interactorOut, err := interactor.StdoutPipe()
	if err != nil {
		return StatusFailed, fmt.Errorf("failed to pipe %s: %w", r.Interactor, err)
	}

	if err := problem.Start(); err != nil {
		return StatusFailed, fmt.Errorf("failed to start %s: %w", r.Problem, err)
	}
	if err := interactor.Start(); err != nil {
		// The problem process is already live; reap it before bailing out.
		problemIn.Close()
		problem.Wait()
		return StatusFailed, fmt.Errorf("failed to start %s: %w", r.Interactor, err)
	}

	// The interactor sees the generated input before any conversation.
	if _, err := interactorIn.Write(input); err != nil && !isBrokenPipe(err) {
		return StatusFailed, fmt.Errorf("failed to write input to %s: %w", r.Interactor, err)
	}

	// Two independent forwarding tasks, one per direction. Each owns its
	// stream ends exclusively; they share nothing else.
	var g errgroup.Group
	g.Go(func() error { return forward(problemOut, interactorIn) })
	g.Go(func() error { return forward(interactorOut, problemIn) })
	if err := g.Wait(); err != nil {
		return StatusFailed, err
	}

	problemErr := problem.Wait()
	interactorErr := interactor.Wait()
	if problemErr != nil || interactorErr != nil {
		return StatusFailed, nil
	}
	return StatusOk, nil
}

// forward copies bytes from src to dst until src reports end-of-data,
// then closes dst so the peer sees EOF. A broken pipe on write means the
// peer already closed its input; that ends this direction normally while
// the opposite direction may still be draining.
func forward(src io.Reader, dst io.WriteCloser) error {
	defer dst.Close()
	buf := make([]byte, 4096)
	for {
		n, err := src.Read(buf)
		if n > 0 {
			if _, werr := dst.Write(buf[:n]); werr != nil {
				if isBrokenPipe(werr) {
					return nil
				}
				return fmt.Errorf("forwarding failed: %w", werr)
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("forwarding failed: %w", err)
		}
	}
}

func isBrokenPipe(err error) bool {
	return errors.Is(err, syscall.EPIPE) || errors.Is(err, os.ErrClosed)
}
