package main

import "github.com/user/codeaudit/cmd"

func main() {
	cmd.Execute()
}
