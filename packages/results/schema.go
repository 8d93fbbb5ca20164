package results

// documentSchema validates persisted run documents before they are trusted
// by the report and history commands. It deliberately allows unknown extra
// fields so older and newer writers can share one file.
const documentSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["runId", "time", "summary", "tests"],
  "properties": {
    "runId": {"type": "string", "minLength": 1},
    "suite": {"type": "string"},
    "environment": {"type": "string"},
    "time": {"type": "string"},
    "duration": {"type": "number", "minimum": 0},
    "summary": {
      "type": "object",
      "required": ["total", "passed", "failed", "skipped"],
      "properties": {
        "total": {"type": "integer", "minimum": 0},
        "passed": {"type": "integer", "minimum": 0},
        "failed": {"type": "integer", "minimum": 0},
        "skipped": {"type": "integer", "minimum": 0}
      }
    },
    "dependencySkips": {"type": "integer", "minimum": 0},
    "dependencyChains": {"type": "integer", "minimum": 0},
    "tests": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "status"],
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "status": {"enum": ["pending", "passed", "failed", "skipped"]},
          "priority": {"enum": ["highest", "high", "medium", "low"]},
          "duration": {"type": "number", "minimum": 0},
          "causedBy": {"enum": ["", "dependency-failure", "explicit", "filtered"]},
          "failedDependency": {"type": "string"},
          "dependsOn": {"type": "array", "items": {"type": "string"}}
        }
      }
    }
  }
}`
