package interpreter

import (
	"fmt"

	"calc/interpreter-go/pkg/runtime"
)

// print writes the display form of val followed by a newline.
func (i *Interpreter) print(val runtime.Value) error {
	_, err := fmt.Fprintln(i.out, runtime.Display(val))
	return err
}
