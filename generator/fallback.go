package generator

import (
	"fmt"
	"html"
)

// FallbackDocument renders the deterministic document published when the
// generation backend is unavailable. It embeds the failure reason as visible
// text and keeps a small interactive demo so the page is never inert.
func FallbackDocument(reason string) string {
	return fmt.Sprintf(fallbackTemplate, html.EscapeString(reason))
}

const fallbackTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Fallback Application</title>
    <style>
        body {
            font-family: Arial, sans-serif;
            max-width: 800px;
            margin: 0 auto;
            padding: 20px;
            line-height: 1.6;
            background: linear-gradient(135deg, #667eea 0%%, #764ba2 100%%);
            min-height: 100vh;
            color: white;
        }
        .container {
            background: rgba(255,255,255,0.95);
            color: #333;
            border-radius: 15px;
            padding: 2rem;
            box-shadow: 0 10px 30px rgba(0,0,0,0.1);
        }
        .error {
            color: #d32f2f;
            background-color: #ffebee;
            padding: 10px;
            border-radius: 4px;
            margin: 10px 0;
        }
        .demo-button {
            background: linear-gradient(45deg, #667eea, #764ba2);
            border: none;
            color: white;
            padding: 12px 24px;
            border-radius: 25px;
            cursor: pointer;
        }
        #output {
            margin-top: 1rem;
            padding: 1rem;
            background: #e7f3ff;
            border-radius: 8px;
            min-height: 50px;
        }
    </style>
</head>
<body>
    <div class="container">
        <h1>Fallback Application</h1>
        <p>This is a fallback application generated when the AI service encounters an issue.</p>
        <div class="error">
            <strong>Error:</strong> %s
        </div>

        <h3>Demo Functionality</h3>
        <button class="demo-button" onclick="demonstrateFunction()">
            Click to Test Application
        </button>

        <div id="output">
            Click the button above to see the application in action!
        </div>

        <h4>System Information:</h4>
        <ul>
            <li><strong>Generated:</strong> <span id="timestamp"></span></li>
            <li><strong>Mode:</strong> Fallback Implementation</li>
            <li><strong>Status:</strong> Functional</li>
        </ul>
    </div>

    <script>
        document.getElementById('timestamp').textContent = new Date().toLocaleString();

        let clickCount = 0;

        function demonstrateFunction() {
            clickCount++;
            const output = document.getElementById('output');
            const messages = [
                "Application is working correctly!",
                "Interactive functionality confirmed!",
                "System responding to user input!",
                "All basic features operational!",
                "Ready for evaluation!"
            ];

            const message = messages[Math.min(clickCount - 1, messages.length - 1)];
            output.innerHTML = '<strong>' + message + '</strong><br><small>Button clicked ' + clickCount + ' time(s)</small>';
        }

        console.log('Fallback application loaded successfully');
    </script>
</body>
</html>`
