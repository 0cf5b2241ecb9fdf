package handlers

import (
  "fmt"
  "strconv"
  "time"

  "github.com/gin-gonic/gin"
)

func queryInt(c *gin.Context, key string, defaultVal int) (int, error) {
  raw := c.Query(key)
  if raw == "" {
    return defaultVal, nil
  }
  val, err := strconv.Atoi(raw)
  if err != nil {
    return 0, fmt.Errorf("invalid %s: %q", key, raw)
  }
  return val, nil
}

func queryInt64Ptr(c *gin.Context, key string) (*int64, error) {
  raw := c.Query(key)
  if raw == "" {
    return nil, nil
  }
  val, err := strconv.ParseInt(raw, 10, 64)
  if err != nil {
    return nil, fmt.Errorf("invalid %s: %q", key, raw)
  }
  return &val, nil
}

// queryDate validates a YYYY-MM-DD query value and returns it unchanged for
// use in date() comparisons.
func queryDate(c *gin.Context, key string) (string, error) {
  raw := c.Query(key)
  if raw == "" {
    return "", nil
  }
  if _, err := time.Parse("2006-01-02", raw); err != nil {
    return "", fmt.Errorf("invalid %s: expected YYYY-MM-DD", key)
  }
  return raw, nil
}

func paramInt64(c *gin.Context, key string) (int64, error) {
  raw := c.Param(key)
  val, err := strconv.ParseInt(raw, 10, 64)
  if err != nil {
    return 0, fmt.Errorf("invalid %s: %q", key, raw)
  }
  return val, nil
}
