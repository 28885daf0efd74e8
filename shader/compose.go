// Package shader holds the WGSL source for the model pass and the
// preprocessor that specializes it per feature combination.
//
// model.wgsl is written once with #ifdef blocks; Compose resolves them
// against a set of defined names, so each feature combination yields plain
// WGSL with exactly the bindings that combination uses. The resolved source
// goes either to the GPU backend directly or through ToSPIRV.
package shader

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
)

//go:embed model.wgsl
var modelWGSL string

// ModelSource returns the unresolved model shader source.
func ModelSource() string {
	return modelWGSL
}

// Preprocessor errors.
var (
	// ErrUnbalancedDirective is returned when an #ifdef has no matching
	// #endif, or an #else or #endif appears outside any block.
	ErrUnbalancedDirective = errors.New("shader: unbalanced conditional directive")

	// ErrUnknownDirective is returned for a # line that is not one of
	// #ifdef, #ifndef, #else, #endif.
	ErrUnknownDirective = errors.New("shader: unknown directive")
)

// Compose resolves the conditional blocks in source against defs and
// returns plain WGSL. Directives must start the line (leading whitespace
// allowed): #ifdef NAME, #ifndef NAME, #else, #endif. Blocks nest.
func Compose(source string, defs []string) (string, error) {
	defined := make(map[string]bool, len(defs))
	for _, d := range defs {
		defined[d] = true
	}

	// Each frame is the emit state of one open block: whether this branch
	// is active, and whether any branch of the block has been taken yet.
	type frame struct {
		active bool
		taken  bool
	}
	var stack []frame

	emitting := func() bool {
		for _, f := range stack {
			if !f.active {
				return false
			}
		}
		return true
	}

	var out strings.Builder
	out.Grow(len(source))

	lines := strings.Split(source, "\n")
	// A trailing newline splits into a final empty element; dropping it
	// keeps the output from growing an extra blank line.
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "#") {
			if emitting() {
				out.WriteString(line)
				out.WriteByte('\n')
			}
			continue
		}

		directive, arg, _ := strings.Cut(trimmed, " ")
		arg = strings.TrimSpace(arg)

		switch directive {
		case "#ifdef":
			stack = append(stack, frame{active: defined[arg], taken: defined[arg]})
		case "#ifndef":
			stack = append(stack, frame{active: !defined[arg], taken: !defined[arg]})
		case "#else":
			if len(stack) == 0 {
				return "", fmt.Errorf("%w: #else at line %d", ErrUnbalancedDirective, i+1)
			}
			top := &stack[len(stack)-1]
			top.active = !top.taken
			top.taken = true
		case "#endif":
			if len(stack) == 0 {
				return "", fmt.Errorf("%w: #endif at line %d", ErrUnbalancedDirective, i+1)
			}
			stack = stack[:len(stack)-1]
		default:
			return "", fmt.Errorf("%w: %q at line %d", ErrUnknownDirective, directive, i+1)
		}
	}

	if len(stack) != 0 {
		return "", fmt.Errorf("%w: %d unclosed block(s) at end of source", ErrUnbalancedDirective, len(stack))
	}
	return out.String(), nil
}
