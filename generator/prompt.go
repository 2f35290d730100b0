package generator

import (
	"fmt"
	"strings"

	"github.com/appforge-ci/deployer/attachments"
	"github.com/appforge-ci/deployer/request"
)

// buildPrompt assembles the generation brief: task description, one
// requirement line per check, and a manifest of the attachments committed
// under assets/.
func buildPrompt(req *request.DeploymentRequest, atts []attachments.Attachment) string {
	var b strings.Builder

	b.WriteString("Create a single-page static web application contained in one HTML file ")
	b.WriteString("with embedded CSS and JavaScript. This app must fully implement the task ")
	b.WriteString("requirements including accepting input parameters, dynamically generating ")
	b.WriteString("and displaying content according to those inputs, and allowing for easy ")
	b.WriteString("future updates to add new features or integrations.\n\n")

	fmt.Fprintf(&b, "BRIEF: %s\n\n", req.Brief)

	b.WriteString("REQUIREMENTS TO SATISFY:\n")
	for _, check := range req.Checks {
		fmt.Fprintf(&b, "- %s\n", requirementFor(check))
	}

	if len(atts) > 0 {
		fmt.Fprintf(&b, "\nATTACHMENTS PROVIDED (%d files):\n", len(atts))
		for _, att := range atts {
			fmt.Fprintf(&b, "- %s (%s): available in the assets/ folder\n", att.Name, att.MediaType)
		}
	}

	b.WriteString(`
SPECIFICATIONS:
1. Create a single HTML file (index.html) that works standalone
2. Include all CSS and JavaScript inline within the HTML
3. The application must be production-ready and follow web best practices
4. Handle all the functionality specified in the brief completely
5. Include proper error handling and user feedback
6. Make it responsive and accessible
7. Use modern web standards (HTML5, ES6+, CSS3)
8. If attachments are referenced, fetch them from the "assets/" folder using the fetch() API
9. The page should work immediately when opened in a browser
10. For CSV files: load with fetch(), parse with proper string processing, calculate sums correctly
11. Always display numerical results with proper formatting
12. When using external libraries, use the latest stable CDN versions and proper API methods

IMPORTANT:
- Generate ONLY the complete HTML code
- Do not include markdown formatting or code blocks
- Start directly with <!DOCTYPE html>
- Ensure all functionality works without external dependencies (except major CDNs)
- Include comprehensive error handling for all fetch operations and library usage

The application should be a complete, working solution that satisfies all the requirements listed above.`)

	return b.String()
}

// requirementFor extracts a human-readable requirement from a check,
// preferring the description and deriving one from the js fragment
// otherwise.
func requirementFor(check request.Check) string {
	if check.Description != "" {
		return check.Description
	}
	if check.JS != "" {
		if strings.Contains(check.JS, "querySelector") {
			return "Ensure proper DOM elements: " + check.JS
		}
		return "JavaScript validation: " + check.JS
	}
	return "General functionality requirement"
}
