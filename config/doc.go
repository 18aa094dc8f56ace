// Package config 提供 AgentWire 的配置管理功能。
//
// 包含运行时、调度、Redis、快照存储、指标、日志与遥测的配置结构，
// 支持从 YAML 文件和环境变量加载，优先级为默认值 → 文件 → 环境变量。
package config
