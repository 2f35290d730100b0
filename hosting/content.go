package hosting

import (
	"fmt"
	"strings"
	"time"
)

func mitLicense() string {
	return fmt.Sprintf(`MIT License

Copyright (c) %d AppForge Deployment Project

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.`, nowFunc().Year())
}

// titleCase capitalizes the first letter of each space-separated word.
// Task ids are ASCII slugs, so no locale handling is needed.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func readme(taskID, site, email string) string {
	title := titleCase(strings.ReplaceAll(taskID, "-", " "))
	if email == "" {
		email = "Anonymous"
	}

	return fmt.Sprintf(`# %s

## Project Overview

This application was automatically generated by the AppForge deployment
service.

- **Task ID:** `+"`%s`"+`
- **Generated:** %s
- **Student:** %s
- **Code Size:** %d lines, %d characters

## Quick Start

The application is deployed to the repository's static pages URL. For local
development, clone the repository and open index.html in a browser.

## Technical Details

- Single-page HTML application
- Inline CSS and vanilla JavaScript (ES6+)
- Self-contained, no build process

## License

This project is licensed under the MIT License - see the LICENSE file for
details.
`, title, taskID, nowFunc().UTC().Format(time.RFC3339), email,
		strings.Count(site, "\n")+1, len(site))
}
