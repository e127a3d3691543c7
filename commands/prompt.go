package commands

import (
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

var (
	unescapeOctal   = regexp.MustCompile(`\\0[0-7][0-7]?[0-7]?`)
	unescapeHex     = regexp.MustCompile(`\\x[0-9a-fA-F][0-9a-fA-F]?`)
	unescapeReplace = strings.NewReplacer(
		`\n`, "\n", // newline
		`\r`, "\r", // carriage return
		`\t`, "\t", // horizontal tab
		`\\`, `\`, // backslash literal
		`\a`, "\a", // alert
		`\e`, "\x1b", // escape
	)

	ColorPrompt = color.New(color.FgGreen, color.Bold)
)

func unescape(s string) string {
	s = unescapeReplace.Replace(s)
	s = unescapeOctal.ReplaceAllStringFunc(s, func(arg string) string {
		out, err := strconv.ParseUint(arg[2:], 8, 8)
		if err != nil {
			return arg
		}
		return string(rune(out))
	})
	s = unescapeHex.ReplaceAllStringFunc(s, func(arg string) string {
		out, err := strconv.ParseUint(arg[2:], 16, 8)
		if err != nil {
			return arg
		}
		return string(rune(out))
	})
	return s
}

// Prompt renders the prompt. PS1 overrides the configured prompt and
// understands \u, \h, \w and \$.
func (s *Shell) Prompt() string {
	prompt := s.Env.Getenv(EnvPrompt)
	if prompt == "" {
		prompt = s.prompt
	}

	if strings.Contains(prompt, `\`) {
		prompt = s.expandPrompt(prompt)
	}

	if s.colorPrompt {
		return ColorPrompt.Sprint(prompt)
	}
	return prompt
}

func (s *Shell) expandPrompt(prompt string) string {
	host, _ := os.Hostname()
	if i := strings.IndexByte(host, '.'); i > 0 {
		host = host[:i]
	}
	prompt = strings.ReplaceAll(prompt, `\u`, s.Env.Getenv(EnvUser))
	prompt = strings.ReplaceAll(prompt, `\h`, host)

	pwd := s.Env.Getenv(EnvPWD)
	if pwd == "" {
		pwd, _ = os.Getwd()
	}
	if home := s.Env.Getenv(EnvHome); home != "" && home != "/" && strings.HasPrefix(pwd, home) {
		pwd = "~" + strings.TrimPrefix(pwd, home)
	}
	prompt = strings.ReplaceAll(prompt, `\w`, pwd)

	if os.Geteuid() == 0 {
		prompt = strings.ReplaceAll(prompt, `\$`, "#")
	} else {
		prompt = strings.ReplaceAll(prompt, `\$`, "$")
	}

	return unescape(prompt)
}
