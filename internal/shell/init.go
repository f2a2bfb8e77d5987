package shell

import (
	"fmt"
	"io"
)

const promptFuncs = `# wellnessctl shell integration
__wellnessctl_prompt_hook() {
  eval "$(command wellnessctl status --env 2>/dev/null)"
}

wellnessctl_prompt_info() {
  command wellnessctl status 2>/dev/null
}

wellnessctl_remind() {
  [[ "$WELLNESSCTL_HAS_TODAY" == "1" ]] || echo "No wellness check-in yet today: wellnessctl checkin"
}
`

// Shells lists the shells with an integration script.
var Shells = []string{"bash", "zsh"}

// WriteBashInit writes the bash shell integration script to the writer.
func WriteBashInit(w io.Writer) {
	fmt.Fprint(w, promptFuncs+`
if [[ -z "$PROMPT_COMMAND" ]]; then
  PROMPT_COMMAND="__wellnessctl_prompt_hook"
else
  PROMPT_COMMAND="__wellnessctl_prompt_hook;${PROMPT_COMMAND}"
fi

eval "$(command wellnessctl completion bash 2>/dev/null)"
`)
}

// WriteZshInit writes the zsh shell integration script to the writer.
func WriteZshInit(w io.Writer) {
	fmt.Fprint(w, promptFuncs+`
autoload -Uz add-zsh-hook
add-zsh-hook precmd __wellnessctl_prompt_hook

eval "$(command wellnessctl completion zsh 2>/dev/null)"
`)
}

// WriteInit writes the script for the named shell.
func WriteInit(w io.Writer, shellName string) error {
	switch shellName {
	case "bash":
		WriteBashInit(w)
	case "zsh":
		WriteZshInit(w)
	default:
		return fmt.Errorf("unsupported shell %q (supported: bash, zsh)", shellName)
	}
	return nil
}
