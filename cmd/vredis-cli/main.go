// Command vredis-cli sends one or more RESP commands to a server and
// prints the result of the last one as JSON.
//
// Usage: vredis-cli host:port command arg... [; command arg...]...
// A literal ";" separates multiple commands sent over the same
// connection; only the final command's result is printed.
package main

import (
	"fmt"
	"os"

	"github.com/mediocregopher/radix/v3"
	"github.com/mediocregopher/radix/v3/resp/resp2"

	"github.com/IceFireDB/vredis/jsonio"
	"github.com/IceFireDB/vredis/value"
)

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		fmt.Println("missing network address.")
		os.Exit(1)
	}
	addr := args[0]
	args = args[1:]

	var cmds [][]string
	cur := []string{}
	for _, a := range args {
		if a == ";" {
			cmds = append(cmds, cur)
			cur = nil
			continue
		}
		cur = append(cur, a)
	}
	cmds = append(cmds, cur)
	if len(cmds[len(cmds)-1]) == 0 {
		fmt.Println("missing command.")
		os.Exit(1)
	}

	conn, err := radix.Dial("tcp", addr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "exception: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close()

	var result resp2.Any
	for _, cmd := range cmds {
		if len(cmd) == 0 {
			continue
		}
		result = resp2.Any{}
		cmdArgs := make([]string, len(cmd)-1)
		copy(cmdArgs, cmd[1:])
		if err := conn.Do(radix.Cmd(&result, cmd[0], cmdArgs...)); err != nil {
			fmt.Fprintf(os.Stderr, "exception: %v\n", err)
			os.Exit(1)
		}
	}

	out, err := jsonio.Encode(fromAny(result.I), 2)
	if err != nil {
		fmt.Fprintf(os.Stderr, "exception: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("result: %s\n", out)
}

// fromAny converts the generic reply radix decodes a RESP value into
// our own Value representation for printing.
func fromAny(v interface{}) value.Value {
	switch t := v.(type) {
	case nil:
		return value.Null
	case []byte:
		return value.NewString(string(t))
	case string:
		return value.NewString(t)
	case int64:
		return value.Integer(int32(t))
	case error:
		return value.NewError("ERR", t.Error())
	case []interface{}:
		vec := value.NewVector()
		for _, elem := range t {
			vec.PushBack(fromAny(elem))
		}
		return vec
	default:
		return value.Null
	}
}
