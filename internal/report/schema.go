package report

// Schema is the JSON Schema (Draft 2020-12) for the calc JSON output.
// It documents the structure returned by WriteJSON.
const Schema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "https://github.com/unbound-force/calc/report.schema.json",
  "title": "Calc Report",
  "description": "Output schema for calc --format=json",
  "type": "object",
  "required": ["version", "results"],
  "properties": {
    "version": {
      "type": "string",
      "description": "calc version that produced the report"
    },
    "results": {
      "type": "array",
      "items": { "$ref": "#/$defs/Evaluation" }
    }
  },
  "$defs": {
    "Evaluation": {
      "type": "object",
      "required": ["operation", "operands"],
      "properties": {
        "operation": {
          "type": "string",
          "description": "Operation name (add, divide, or the unrecognized input)"
        },
        "operands": {
          "type": "array",
          "items": { "$ref": "#/$defs/Number" },
          "minItems": 2,
          "maxItems": 2
        },
        "result": {
          "$ref": "#/$defs/Number",
          "description": "Absent when the operation failed"
        },
        "error": {
          "type": "string",
          "description": "Failure message, e.g. 'division by zero'"
        }
      },
      "oneOf": [
        { "required": ["result"], "not": { "required": ["error"] } },
        { "required": ["error"], "not": { "required": ["result"] } }
      ]
    },
    "Number": {
      "oneOf": [
        { "type": "number" },
        { "type": "string", "enum": ["+Inf", "-Inf", "NaN"] }
      ]
    }
  }
}`
