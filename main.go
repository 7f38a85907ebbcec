/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package main

import (
	"github.com/josephgoksu/FocusFlow/cmd"
	"github.com/josephgoksu/FocusFlow/internal/logger"
)

func main() {
	defer logger.HandlePanic()
	cmd.Execute()
}
