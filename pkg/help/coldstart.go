package help

const ColdstartYAML = `# site-growth-analyzer Quick Start

commands:
  serve: "HTTP API: POST /analyze, GET /health, GET /metrics"
  analyze: "Analyze one or more URLs from the command line"
  signals: "Print raw page signals and the page profile for one URL"
  quickstart: "Show this cheat sheet"

examples:
  start_server: |
    site-growth-analyzer serve --addr :5000

  separate_metrics_port: |
    site-growth-analyzer serve --addr :5000 --metrics-addr :9090

  api_request: |
    curl -s -X POST localhost:5000/analyze \
      -H 'Content-Type: application/json' \
      -d '{"url": "example.com", "goal": "ecommerce"}'

  single_url: |
    site-growth-analyzer analyze --url example.com --goal blog

  batch_to_files: |
    site-growth-analyzer analyze --url "a.com,b.com,c.com" --workers 4 --output-dir reports --format yaml

  ci_gate: |
    site-growth-analyzer analyze --url https://staging.example.com --fail-under 70

  inspect_signals: |
    site-growth-analyzer signals --url example.com --format yaml

goals:
  business: "Default. Lead capture and trust building"
  portfolio: "Showcase work and win clients"
  blog: "Grow readership and subscribers"
  ecommerce: "Reduce cart abandonment, raise order value"

scoring:
  categories: "ux, seo, performance, content (each capped at 25)"
  overall: "Sum of categories clamped to 0-100"
  fallback: "Unreachable pages return a report with error set and overallScore 50"

config_file:
  path: "config.yaml (or --config)"
  keys:
    - addr
    - metrics_addr
    - fetch_timeout
    - max_body_bytes
    - user_agent
    - log_level
    - log_file
    - rules_file
    - allowed_origins
    - shutdown_timeout

error_behavior:
  - "Empty URL over HTTP: 400 {\"error\": \"No URL provided\"}"
  - "Fetch or parse failure: 200 with the fallback report"
  - "Exit codes: 0=success, 1=partial failure or below --fail-under, 2=complete failure"
`
