package notify

import (
	"fmt"

	"github.com/fatih/color"
)

func (n *NotifyService) printToTerminal(title string, message string, nType NotificationType) error {
	var c *color.Color
	var prefix string

	switch nType {
	case Error:
		c = color.New(color.FgRed, color.Bold)
		prefix = fmt.Sprintf("%s - Error", title)
	default:
		c = color.New(color.FgGreen)
		prefix = fmt.Sprintf("%s - Info", title)
	}

	if _, err := c.Fprintf(n.out, "%s: %s\n", prefix, message); err != nil {
		return fmt.Errorf("failed to write notification: %w", err)
	}
	return nil
}
