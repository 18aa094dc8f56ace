// 版权所有 2024 AgentWire Authors. 版权所有。
// 此源代码的使用由 MIT 许可规范,该许可可以是
// 在LICENSE文件中找到。

/*
包 metrics 提供基于 Prometheus 的指标采集能力，覆盖 Agent 调用、
类注册与延迟调度三大维度。

# 概述

本包通过 Collector 统一注册和记录 Prometheus 指标，使用 promauto
工厂注册到调用方提供的 Registerer，便于测试隔离。所有指标按
namespace 隔离，支持多维度 label 分组。

# 核心类型

  - Collector：指标收集器，持有 Counter、Histogram、Gauge 等
    Prometheus 指标。nil Collector 的所有方法均为空操作。

# 主要能力

  - 调用指标：调用总数与调用耗时，按 agent_type/method/status 分组。
  - 注册指标：类注册计数，按 status 分组。
  - Agent 指标：存活 Agent 数量 Gauge。
  - 调度指标：延迟调用入队计数，按 backend 分组。
*/
package metrics
