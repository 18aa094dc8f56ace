// Copyright 2026 AgentWire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license.

/*
Package testutil 提供 AgentWire 测试的共享工具和辅助函数。

# 概述

testutil 包为整个项目的单元测试提供统一的辅助能力，
避免各包重复实现相似的测试基础设施。

# 核心能力

  - 上下文辅助: TestContext / TestContextWithTimeout / CancelledContext，
    自动注册 Cleanup 防止泄漏
  - 异步断言: AssertEventuallyTrue，支持超时轮询等待条件满足
  - 数据工具: MustJSON / MustParseJSON，简化测试数据构造

# 子包

  - testutil/fixtures: 测试数据工厂，提供预置的 Agent 类声明与
    Instance 实现（计数器、回显等），供 agent/schedule 等包复用

# 使用示例

	ctx := testutil.TestContext(t)
	def, initiator := fixtures.CounterDefinition()
*/
package testutil
